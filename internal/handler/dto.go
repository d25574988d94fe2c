package handler

type BriefResponse struct {
	Summary    string   `json:"summary"`
	Themes     []string `json:"themes"`
	MarketMood string   `json:"market_mood"`
}

type SlotResponse struct {
	Rank        int      `json:"rank"`
	Section     string   `json:"section"`
	StoryID     string   `json:"story_id,omitempty"`
	TopicSlug   string   `json:"topic_slug"`
	Angle       string   `json:"angle"`
	Title       string   `json:"title"`
	Dek         string   `json:"dek"`
	FutureEvent string   `json:"future_event"`
	LedeSeed    string   `json:"lede_seed,omitempty"`
	NutSeed     string   `json:"nut_seed,omitempty"`
	Outline     []string `json:"outline"`
}

type EditionResponse struct {
	Day          string                    `json:"day"`
	YearsForward int                       `json:"years_forward"`
	EditionDate  string                    `json:"edition_date"`
	GeneratedAt  string                    `json:"generated_at"`
	Mode         string                    `json:"mode"`
	Brief        BriefResponse             `json:"brief"`
	Hero         SlotResponse              `json:"hero"`
	SectionOrder []string                  `json:"section_order"`
	Sections     map[string][]SlotResponse `json:"sections"`
}

type DraftResponse struct {
	Title string `json:"title"`
	Dek   string `json:"dek"`
	Body  string `json:"body"`
}

type StoryResponse struct {
	StoryID         string         `json:"story_id"`
	CuratedTitle    string         `json:"curated_title"`
	CuratedDek      string         `json:"curated_dek"`
	TopicTitle      string         `json:"topic_title"`
	SparkDirections []string       `json:"spark_directions"`
	Key             bool           `json:"key"`
	Hero            bool           `json:"hero"`
	FutureEventSeed string         `json:"future_event_seed"`
	Draft           *DraftResponse `json:"draft_article"`
}

type PlanResponse struct {
	Day          string          `json:"day"`
	YearsForward int             `json:"years_forward"`
	GeneratedAt  string          `json:"generated_at"`
	Mode         string          `json:"mode"`
	Stories      []StoryResponse `json:"stories"`
}

type SignalResponse struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Prob  float64 `json:"prob"`
}

type RenderedArticleResponse struct {
	StoryID             string           `json:"story_id"`
	Section             string           `json:"section"`
	Title               string           `json:"title"`
	Dek                 string           `json:"dek"`
	Body                string           `json:"body"`
	EditionDate         string           `json:"edition_date"`
	Signals             []SignalResponse `json:"signals"`
	ModelUsed           string           `json:"model_used"`
	CurationGeneratedAt string           `json:"curation_generated_at"`
	RenderedAt          string           `json:"rendered_at"`
}
