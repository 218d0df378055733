package s3

import (
	"context"
	"errors"
	"image"
	"io"
	"testing"

	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type putCall struct {
	bucket      string
	key         string
	contentType string
	body        []byte
}

type fakePutter struct {
	calls  []putCall
	failOn string
}

func (f *fakePutter) PutFile(_ context.Context, reader io.Reader, bucket, key, contentType string) error {
	if key == f.failOn {
		return errors.New("access denied")
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.calls = append(f.calls, putCall{bucket: bucket, key: key, contentType: contentType, body: body})
	return nil
}

func TestCardPublisherPublish(t *testing.T) {
	putter := &fakePutter{}
	publisher := NewCardPublisher(zap.NewNop().Sugar(), putter, "pokedex-cards")
	publisher.newID = func() string { return "abc" }

	record := pokedex.Record{Name: "Pikachu", Weight: 60, Height: 4, Types: []string{"electric"}}
	require.NoError(t, publisher.Publish(context.Background(), record, image.NewRGBA(image.Rect(0, 0, 2, 2))))

	require.Len(t, putter.calls, 2)
	assert.Equal(t, "pokedex-cards", putter.calls[0].bucket)
	assert.Equal(t, "cards/pikachu/abc.png", putter.calls[0].key)
	assert.Equal(t, "image/png", putter.calls[0].contentType)
	assert.Equal(t, "\x89PNG", string(putter.calls[0].body[:4]))
	assert.Equal(t, "records/pikachu/abc.json", putter.calls[1].key)
	assert.Contains(t, string(putter.calls[1].body), `"Name":"Pikachu"`)
	assert.Equal(t, Publication{CardKey: "cards/pikachu/abc.png", RecordKey: "records/pikachu/abc.json"}, publisher.Last())
}

func TestCardPublisherPublishFailure(t *testing.T) {
	putter := &fakePutter{failOn: "cards/pikachu/abc.png"}
	publisher := NewCardPublisher(zap.NewNop().Sugar(), putter, "pokedex-cards")
	publisher.newID = func() string { return "abc" }

	err := publisher.Publish(context.Background(), pokedex.Record{Name: "Pikachu"}, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	assert.ErrorContains(t, err, "cards/pikachu/abc.png")
	assert.Empty(t, putter.calls)
	assert.Equal(t, Publication{}, publisher.Last())
}

func TestKeysUseFreshIDs(t *testing.T) {
	publisher := NewCardPublisher(zap.NewNop().Sugar(), &fakePutter{}, "bucket")
	assert.NotEqual(t, publisher.newID(), publisher.newID())
}
