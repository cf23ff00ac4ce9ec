// internal/domain/models/orphanageprofile.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrphanageProfile holds the public details of an orphanage.
//
// Every field is required at creation. Fields are omitempty so that an
// absent value is also absent from the encoded document, which is what the
// record store's required-field check looks at. NumChildren is a pointer so
// that zero children is still a present value.
type OrphanageProfile struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OrphanageName Text               `bson:"orphanageName,omitempty" json:"orphanageName"`
	PrincipalName Text               `bson:"principalName,omitempty" json:"principalName"`
	City          Text               `bson:"city,omitempty" json:"city"`
	State         Text               `bson:"state,omitempty" json:"state"`
	Address       Text               `bson:"address,omitempty" json:"address"`
	NumChildren   *Headcount         `bson:"numChildren,omitempty" json:"numChildren"`
	Needs         Text               `bson:"needs,omitempty" json:"needs"`
	Latitude      Text               `bson:"latitude,omitempty" json:"latitude"`
	Longitude     Text               `bson:"longitude,omitempty" json:"longitude"`
	PortNumber    Text               `bson:"portNumber,omitempty" json:"portNumber"` // unique
}

// OrphanageSummary is the reduced projection served by the listing
// endpoint. Coordinates, city and state are left out.
type OrphanageSummary struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OrphanageName Text               `bson:"orphanageName,omitempty" json:"orphanageName"`
	PrincipalName Text               `bson:"principalName,omitempty" json:"principalName"`
	Address       Text               `bson:"address,omitempty" json:"address"`
	NumChildren   *Headcount         `bson:"numChildren,omitempty" json:"numChildren"`
	Needs         Text               `bson:"needs,omitempty" json:"needs"`
	PortNumber    Text               `bson:"portNumber,omitempty" json:"portNumber"`
}

// OrphanageProfileUpdate carries the fields of a partial update. Only
// non-nil fields are written.
type OrphanageProfileUpdate struct {
	OrphanageName *Text      `bson:"orphanageName,omitempty" json:"orphanageName"`
	PrincipalName *Text      `bson:"principalName,omitempty" json:"principalName"`
	City          *Text      `bson:"city,omitempty" json:"city"`
	State         *Text      `bson:"state,omitempty" json:"state"`
	Address       *Text      `bson:"address,omitempty" json:"address"`
	NumChildren   *Headcount `bson:"numChildren,omitempty" json:"numChildren"`
	Needs         *Text      `bson:"needs,omitempty" json:"needs"`
	Latitude      *Text      `bson:"latitude,omitempty" json:"latitude"`
	Longitude     *Text      `bson:"longitude,omitempty" json:"longitude"`
	PortNumber    *Text      `bson:"portNumber,omitempty" json:"portNumber"`
}

// Headcount is a number of children. Clients send it either as a JSON
// number or as a numeric string (form inputs), so both decode.
type Headcount int

// UnmarshalJSON accepts 12, "12" and null.
func (h *Headcount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("numChildren: %q is not a number", s)
		}
		*h = Headcount(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("numChildren: %w", err)
	}
	*h = Headcount(n)
	return nil
}

// NewHeadcount returns a pointer to n, for building profiles in code.
func NewHeadcount(n int) *Headcount {
	h := Headcount(n)
	return &h
}

// Text is a free-text profile field. Clients send coordinates and port
// numbers as JSON numbers as often as strings; numbers and booleans are
// kept as their literal text.
type Text string

// UnmarshalJSON accepts "a", 17.38, 5001, true and null.
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		*t = Text(b)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("expected a string or a number, got %s", b)
		}
		*t = Text(n.String())
	}
	return nil
}

// NewText returns a pointer to s, for building updates in code.
func NewText(s string) *Text {
	t := Text(s)
	return &t
}
