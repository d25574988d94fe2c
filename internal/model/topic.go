package model

// Horizon buckets classify how soon a topic is expected to mature into a
// concrete event.
const (
	HorizonNear = "near"
	HorizonMid  = "mid"
	HorizonLong = "long"
)

// Signal kinds as stored by the collection layer.
const (
	SignalEcon   = "econ"
	SignalMarket = "market"
)

// Front-page sections. The hero always comes from SectionUS.
const (
	SectionUS         = "U.S."
	SectionWorld      = "World"
	SectionBusiness   = "Business"
	SectionTechnology = "Technology"
	SectionAI         = "AI"
	SectionArts       = "Arts"
	SectionLifestyle  = "Lifestyle"
	SectionOpinion    = "Opinion"
)

// Story angles, cycled in this order when a slot carries none.
const (
	AngleImpact  = "impact"
	AngleMarkets = "markets"
	AnglePolicy  = "policy"
	AngleTech    = "tech"
	AngleSociety = "society"
)

// SectionOrder returns the fixed front-page section order.
func SectionOrder() []string {
	return []string{
		SectionUS, SectionWorld, SectionBusiness, SectionTechnology,
		SectionAI, SectionArts, SectionLifestyle, SectionOpinion,
	}
}

// AngleCycle returns the canonical angle rotation.
func AngleCycle() []string {
	return []string{AngleImpact, AngleMarkets, AnglePolicy, AngleTech, AngleSociety}
}

// Topic is one baseline signal collected for a day. Immutable once stored.
type Topic struct {
	Slug    string
	Theme   string
	Label   string
	Horizon string
	Score   float64
}

// Signal is an economic or market observation carried into prompts and
// final payloads for context only. Exactly one of Value or Prob is
// meaningful depending on the series.
type Signal struct {
	Label string
	Value float64
	Prob  float64
}
