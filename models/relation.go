package models

// Placeholder labels used when an optional field is absent from the input.
// Grammatical gender differs per field, so there is more than one.
const (
	PlaceholderMasculine = "Не указан"
	PlaceholderNeuter    = "Не указано"
	PlaceholderFeminine  = "Не указана"
)

// Relation is one legal-relationship record of the input document.
// JSON keys are the fixed Cyrillic contract of the analysis format.
type Relation struct {
	Source   *string      `json:"источник,omitempty"`
	Fragment *string      `json:"фрагмент_текста,omitempty"`
	Body     RelationBody `json:"правоотношение"`
}

// RelationBody holds the nested structure of a relation
type RelationBody struct {
	Goals    []string  `json:"потребности_цели"`
	Objects  []string  `json:"объекты"`
	Subjects []Subject `json:"субъекты"`
	Rights   []Right   `json:"права"`
	Duties   []Duty    `json:"обязанности"`
}

// Subject is a party to the relation
type Subject struct {
	Name *string `json:"название,omitempty"`
	Type *string `json:"тип,omitempty"`
}

// SubjectRef names the holder or obligor of a right or duty
type SubjectRef struct {
	Name *string `json:"название,omitempty"`
}

// Right is an entitlement held by a subject
type Right struct {
	Holder        *SubjectRef   `json:"субъект_права,omitempty"`
	Description   *string       `json:"описание_права,omitempty"`
	CounterDuties []CounterDuty `json:"встречные_обязанности"`
}

// CounterDuty is an obligation owed by another subject in exchange for a right
type CounterDuty struct {
	Obligor     *SubjectRef `json:"субъект_обязанности,omitempty"`
	Description *string     `json:"описание_обязанности,omitempty"`
}

// Duty is an obligation held by a subject
type Duty struct {
	Obligor       *SubjectRef    `json:"субъект_обязанности,omitempty"`
	Description   *string        `json:"описание_обязанности,omitempty"`
	SecuredRights []SecuredRight `json:"обеспечиваемые_права"`
}

// SecuredRight is a right of another subject that a duty secures
type SecuredRight struct {
	Holder      *SubjectRef `json:"субъект_права,omitempty"`
	Description *string     `json:"описание_права,omitempty"`
}

func valueOr(s *string, placeholder string) string {
	if s == nil {
		return placeholder
	}
	return *s
}

func (r *SubjectRef) nameOr(placeholder string) string {
	if r == nil {
		return placeholder
	}
	return valueOr(r.Name, placeholder)
}

// SourceLabel returns the relation source or a placeholder
func (r Relation) SourceLabel() string {
	return valueOr(r.Source, PlaceholderMasculine)
}

// FragmentText returns the quoted text fragment or a placeholder
func (r Relation) FragmentText() string {
	return valueOr(r.Fragment, PlaceholderMasculine)
}

// NameText returns the subject name or a placeholder
func (s Subject) NameText() string {
	return valueOr(s.Name, PlaceholderNeuter)
}

// TypeText returns the subject type or a placeholder
func (s Subject) TypeText() string {
	return valueOr(s.Type, PlaceholderMasculine)
}

// Label formats the subject as "name (type)"
func (s Subject) Label() string {
	return s.NameText() + " (" + s.TypeText() + ")"
}

// HolderName returns the right holder name or a placeholder
func (r Right) HolderName() string {
	return r.Holder.nameOr(PlaceholderMasculine)
}

// DescriptionText returns the right description or a placeholder
func (r Right) DescriptionText() string {
	return valueOr(r.Description, PlaceholderNeuter)
}

// ObligorName returns the obligor name or a placeholder
func (d CounterDuty) ObligorName() string {
	return d.Obligor.nameOr(PlaceholderMasculine)
}

// DescriptionText returns the counter-duty description or a placeholder
func (d CounterDuty) DescriptionText() string {
	return valueOr(d.Description, PlaceholderFeminine)
}

// ObligorName returns the obligor name or a placeholder
func (d Duty) ObligorName() string {
	return d.Obligor.nameOr(PlaceholderMasculine)
}

// DescriptionText returns the duty description or a placeholder
func (d Duty) DescriptionText() string {
	return valueOr(d.Description, PlaceholderNeuter)
}

// HolderName returns the secured right holder name or a placeholder
func (s SecuredRight) HolderName() string {
	return s.Holder.nameOr(PlaceholderMasculine)
}

// DescriptionText returns the secured right description or a placeholder
func (s SecuredRight) DescriptionText() string {
	return valueOr(s.Description, PlaceholderNeuter)
}
