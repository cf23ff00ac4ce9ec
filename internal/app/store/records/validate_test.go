package recordstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMissingFields(t *testing.T) {
	required := []string{"name", "email", "count"}

	tests := []struct {
		name string
		doc  bson.D
		want []string
	}{
		{
			name: "all present",
			doc:  bson.D{{Key: "name", Value: "A"}, {Key: "email", Value: "a@x.com"}, {Key: "count", Value: int32(3)}},
			want: nil,
		},
		{
			name: "zero number is present",
			doc:  bson.D{{Key: "name", Value: "A"}, {Key: "email", Value: "a@x.com"}, {Key: "count", Value: int32(0)}},
			want: nil,
		},
		{
			name: "absent keys reported in declaration order",
			doc:  bson.D{{Key: "email", Value: "a@x.com"}},
			want: []string{"name", "count"},
		},
		{
			name: "blank string and null count as missing",
			doc:  bson.D{{Key: "name", Value: "   "}, {Key: "email", Value: nil}, {Key: "count", Value: int32(1)}},
			want: []string{"name", "email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, missingFields(tt.doc, required))
		})
	}
}

func TestToDoc_OmitsEmptyFields(t *testing.T) {
	type doc struct {
		Name  string `bson:"name,omitempty"`
		Email string `bson:"email,omitempty"`
		Count *int   `bson:"count,omitempty"`
	}

	d, err := toDoc(doc{Name: "A"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"email", "count"}, missingFields(d, []string{"name", "email", "count"}))

	zero := 0
	d, err = toDoc(doc{Name: "A", Email: "a@x.com", Count: &zero})
	assert.NoError(t, err)
	assert.Empty(t, missingFields(d, []string{"name", "email", "count"}))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Collection: "donors", Missing: []string{"email", "password"}}
	assert.Equal(t, "donors validation failed: missing required fields: email, password", err.Error())
}

func TestSchema_IndexModels(t *testing.T) {
	s := Schema{Collection: "donors", Unique: []string{"email"}}
	models := s.IndexModels()
	if assert.Len(t, models, 1) {
		assert.Equal(t, bson.D{{Key: "email", Value: 1}}, models[0].Keys)
		assert.Equal(t, "email_1", *models[0].Options.Name)
		assert.True(t, *models[0].Options.Unique)
	}
}
