package s3

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"

	"github.com/BielosX/wombat/pokedex/src/card"
	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/BielosX/wombat/pokedex/src/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type filePutter interface {
	PutFile(ctx context.Context, reader io.Reader, bucket, key, contentType string) error
}

// Publication names the objects uploaded for one lookup.
type Publication struct {
	CardKey   string
	RecordKey string
}

// CardPublisher uploads each rendered card and its record under a fresh id.
type CardPublisher struct {
	client filePutter
	bucket string
	newID  func() string
	last   Publication
	sugar  *zap.SugaredLogger
}

func NewCardPublisher(sugar *zap.SugaredLogger, client filePutter, bucket string) *CardPublisher {
	return &CardPublisher{
		client: client,
		bucket: bucket,
		newID:  uuid.NewString,
		sugar:  sugar,
	}
}

func Keys(name, id string) Publication {
	return Publication{
		CardKey:   fmt.Sprintf("cards/%s/%s.png", name, id),
		RecordKey: fmt.Sprintf("records/%s/%s.json", name, id),
	}
}

func (p *CardPublisher) Publish(ctx context.Context, record pokedex.Record, cardImage image.Image) error {
	pngData, err := card.EncodePNG(cardImage)
	if err != nil {
		return err
	}
	jsonData, err := store.Encode(record)
	if err != nil {
		return err
	}
	keys := Keys(record.LookupName(), p.newID())
	p.sugar.Infof("Sending card of size %d to S3", len(pngData))
	if err := p.client.PutFile(ctx, bytes.NewReader(pngData), p.bucket, keys.CardKey, "image/png"); err != nil {
		return fmt.Errorf("uploading %s: %w", keys.CardKey, err)
	}
	p.sugar.Infof("Sending record of size %d to S3", len(jsonData))
	if err := p.client.PutFile(ctx, bytes.NewReader(jsonData), p.bucket, keys.RecordKey, "application/json"); err != nil {
		return fmt.Errorf("uploading %s: %w", keys.RecordKey, err)
	}
	p.last = keys
	return nil
}

// Last returns the keys of the most recent successful publication.
func (p *CardPublisher) Last() Publication {
	return p.last
}
