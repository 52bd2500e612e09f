package models

// FieldKind is the widget of a form field
type FieldKind string

const (
	FieldText   FieldKind = "text"
	FieldEmail  FieldKind = "email"
	FieldPhone  FieldKind = "tel"
	FieldSelect FieldKind = "select"
)

// FormField describes one input of the registration form. Name is the key
// the submission must use; Pattern, when set, is a regexp the value must
// match in full; Options, when set, is the closed set of accepted values.
type FormField struct {
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	Kind      FieldKind `json:"kind"`
	Required  bool      `json:"required"`
	Pattern   string    `json:"pattern,omitempty"`
	MaxLength int       `json:"maxLength,omitempty"`
	Options   []string  `json:"options,omitempty"`
}

// FormBlock groups the fields of one participant, or the custom questions
type FormBlock struct {
	Label  string      `json:"label"`
	Fields []FormField `json:"fields"`
}

// FormSpec is the ordered field specification synthesized from an event.
// It is a pure function of the event descriptor.
type FormSpec struct {
	ParticipantCount int         `json:"participantCount"`
	Blocks           []FormBlock `json:"blocks"`
}

// Field looks up a field by submission name across all blocks
func (f *FormSpec) Field(name string) (*FormField, bool) {
	for bi := range f.Blocks {
		for fi := range f.Blocks[bi].Fields {
			if f.Blocks[bi].Fields[fi].Name == name {
				return &f.Blocks[bi].Fields[fi], true
			}
		}
	}
	return nil, false
}
