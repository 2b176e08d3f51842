package model

// ClickStat is a single entry of the append-only click log.
// Timestamp is in epoch milliseconds.
type ClickStat struct {
	PlatformName string `json:"platformName"`
	Timestamp    int64  `json:"timestamp"`
}

// ClickStats is the aggregated view over the full click history.
type ClickStats struct {
	TotalClicks int            `json:"totalClicks"`
	ByPlatform  map[string]int `json:"byPlatform"`
	History     []ClickStat    `json:"history"`
}

// Dashboard combines everything the admin view needs in one response.
// EstimatedEarnings is a mock figure based on an assumed conversion rate and CPA.
type Dashboard struct {
	Links             []AffiliateLink `json:"links"`
	Stats             ClickStats      `json:"stats"`
	LinkClicks        map[string]int  `json:"linkClicks"`
	TopPlatform       *PlatformCount  `json:"topPlatform"`
	EstimatedEarnings float64         `json:"estimatedEarnings"`
	CPARate           float64         `json:"cpaRate"`
	ConversionRate    float64         `json:"conversionRate"`
}

// PlatformCount pairs a platform name with its click count.
type PlatformCount struct {
	PlatformName string `json:"platformName"`
	Clicks       int    `json:"clicks"`
}
