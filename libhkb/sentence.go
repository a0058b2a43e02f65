// Package libhkb resolves matched reminder phrases ("in 5 minutes", "next monday at
// 09:00", "on the 3rd of june") into a relative offset or an absolute instant.
//
// The recognizer that turns raw text into a Sentence lives outside this package;
// libhkb only receives the typed parse tree and applies the calendar rules.
package libhkb

import (
	"encoding/json"
	"fmt"
)

// Sentence is one matched phrase. The set of implementations is closed: In, InAlt,
// At, On, Next and Tomorrow.
type Sentence interface {
	shape() string
}

// AtClause is a trailing "at HH:MM".
type AtClause struct {
	Hour   string `json:"hour"`
	Minute string `json:"minute"`
}

// OnClause is a trailing "on [the] DAY of MONTH".
type OnClause struct {
	Day   string `json:"day"`
	Month string `json:"month"`
}

// In is "in N <unit>(s)".
type In struct {
	Amount string
	Unit   string
}

// InAlt is "in <cardinal> days" with an optional AT clause.
type InAlt struct {
	Cardinal string
	At       *AtClause
}

// At is "at HH:MM" with an optional ON clause.
type At struct {
	Clock AtClause
	On    *OnClause
}

// On is "on [the] DAY of MONTH" with an optional AT clause.
type On struct {
	Date OnClause
	At   *AtClause
}

// Next is "next <weekday|week|month>" with an optional AT clause.
type Next struct {
	Target string
	At     *AtClause
}

// Tomorrow is "tomorrow" with an optional AT clause.
type Tomorrow struct {
	At *AtClause
}

const (
	ShapeIn       = "in"
	ShapeInAlt    = "in_alt"
	ShapeAt       = "at"
	ShapeOn       = "on"
	ShapeNext     = "next"
	ShapeTomorrow = "tomorrow"
)

func (In) shape() string       { return ShapeIn }
func (InAlt) shape() string    { return ShapeInAlt }
func (At) shape() string       { return ShapeAt }
func (On) shape() string       { return ShapeOn }
func (Next) shape() string     { return ShapeNext }
func (Tomorrow) shape() string { return ShapeTomorrow }

// Shape returns the wire name of the sentence's shape.
func Shape(s Sentence) string {
	if s == nil {
		return ""
	}
	return s.shape()
}

// wireSentence is the flat JSON form exchanged with the matcher.
type wireSentence struct {
	Shape    string    `json:"shape"`
	Amount   string    `json:"amount,omitempty"`
	Unit     string    `json:"unit,omitempty"`
	Cardinal string    `json:"cardinal,omitempty"`
	Hour     string    `json:"hour,omitempty"`
	Minute   string    `json:"minute,omitempty"`
	Day      string    `json:"day,omitempty"`
	Month    string    `json:"month,omitempty"`
	Target   string    `json:"target,omitempty"`
	At       *AtClause `json:"at,omitempty"`
	On       *OnClause `json:"on,omitempty"`
}

func (s In) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireSentence{Shape: ShapeIn, Amount: s.Amount, Unit: s.Unit})
}

func (s InAlt) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireSentence{Shape: ShapeInAlt, Cardinal: s.Cardinal, At: s.At})
}

func (s At) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireSentence{Shape: ShapeAt, Hour: s.Clock.Hour, Minute: s.Clock.Minute, On: s.On})
}

func (s On) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireSentence{Shape: ShapeOn, Day: s.Date.Day, Month: s.Date.Month, At: s.At})
}

func (s Next) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireSentence{Shape: ShapeNext, Target: s.Target, At: s.At})
}

func (s Tomorrow) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireSentence{Shape: ShapeTomorrow, At: s.At})
}

// DecodeSentence decodes the matcher's JSON form into a Sentence.
// An unknown shape is reported as ErrInternalInvariantViolation.
func DecodeSentence(data []byte) (Sentence, error) {
	var w wireSentence
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sentence: %w", err)
	}

	switch w.Shape {
	case ShapeIn:
		return In{Amount: w.Amount, Unit: w.Unit}, nil
	case ShapeInAlt:
		return InAlt{Cardinal: w.Cardinal, At: w.At}, nil
	case ShapeAt:
		return At{Clock: AtClause{Hour: w.Hour, Minute: w.Minute}, On: w.On}, nil
	case ShapeOn:
		return On{Date: OnClause{Day: w.Day, Month: w.Month}, At: w.At}, nil
	case ShapeNext:
		return Next{Target: w.Target, At: w.At}, nil
	case ShapeTomorrow:
		return Tomorrow{At: w.At}, nil
	default:
		return nil, invariantf("unknown sentence shape %q", w.Shape)
	}
}
