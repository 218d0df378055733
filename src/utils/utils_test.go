package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFields(t *testing.T) {
	type sample struct {
		Name  string
		Count int
	}
	fields := GetFields(sample{})
	assert.Len(t, fields, 2)
	assert.Equal(t, "Name", fields[0].Name)
	assert.Equal(t, "Count", fields[1].Name)
}

func TestParquetTagToKeyValue(t *testing.T) {
	properties := ParquetTagToKeyValue("name=moves, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=REPEATED")
	assert.Equal(t, map[string]string{
		"name":           "moves",
		"type":           "BYTE_ARRAY",
		"convertedtype":  "UTF8",
		"repetitiontype": "REPEATED",
	}, properties)
	assert.Empty(t, ParquetTagToKeyValue(""))
}
