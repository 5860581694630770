package domain

// ImportDocument is the nested payload accepted by the bulk import endpoint:
// categories, each with questions, each with options and optional references.
type ImportDocument struct {
	Categories []ImportCategory `json:"categories"`
}

// ImportCategory names a category and carries its questions.
// Questions are deliberately not dived into here; the importer validates each
// question individually as it inserts, so a malformed question aborts the
// transaction mid-import.
type ImportCategory struct {
	Name      string           `json:"name" validate:"required"`
	Questions []ImportQuestion `json:"questions"`
}

type ImportQuestion struct {
	Question   string            `json:"question" validate:"required"`
	Options    []ImportOption    `json:"options" validate:"dive"`
	References []ImportReference `json:"references" validate:"dive"`
}

type ImportOption struct {
	Text    string `json:"text" validate:"required"`
	Correct bool   `json:"correct"`
}

// ImportReference links a question to supporting material. Title is optional;
// url format is intentionally not validated, only presence.
type ImportReference struct {
	Title string `json:"title"`
	URL   string `json:"url" validate:"required"`
}

// SourceDocument is an ImportDocument stored as a standalone JSON file in a
// question source, with the owning topic named inline.
type SourceDocument struct {
	Topic string `json:"topic" validate:"required"`
	ImportDocument
}
