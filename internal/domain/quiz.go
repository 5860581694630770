package domain

// Topic is the top-level grouping for a quiz corpus.
type Topic struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TopicTree is the full nested read-back of a topic, as used by the editing
// view. A topic with no rows at all still yields an empty Categories slice.
type TopicTree struct {
	Topic      TopicRef       `json:"topic"`
	Categories []CategoryTree `json:"categories"`
}

// TopicRef carries the topic's id, or null when the topic does not exist.
type TopicRef struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

type CategoryTree struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Questions []QuestionTree `json:"questions"`
}

type QuestionTree struct {
	ID         int64       `json:"id"`
	Question   string      `json:"question"`
	Options    []Option    `json:"options"`
	References []Reference `json:"references"`
}

type Option struct {
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type Reference struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// FlatQuestion is the denormalized play-mode row: one entry per question with
// its options and references embedded.
type FlatQuestion struct {
	ID         int64           `json:"id"`
	Question   string          `json:"question"`
	Category   string          `json:"category"`
	Options    []FlatOption    `json:"options"`
	References []FlatReference `json:"references"`
}

type FlatOption struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type FlatReference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// GameState is the single shared progress record. Exactly one row exists in
// the store; writes replace it wholesale.
type GameState struct {
	CurrentTopic    string `json:"current_topic"`
	CurrentPosition int    `json:"current_position"`
	CurrentScore    int    `json:"current_score"`
	TargetScore     int    `json:"target_score"`
}
