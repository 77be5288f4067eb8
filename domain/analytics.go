package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetAnalytics = "analytics retrieved successfully"
	MessageFailedGetAnalytics  = "failed to retrieve analytics"

	ErrInvalidRangeKind = errors.New("range must be day or month")
)

const (
	RangeDay   = "day"
	RangeMonth = "month"
)

type (
	NameCount struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}

	StateBreakdown struct {
		Total int         `json:"total"`
		Top   []NameCount `json:"top"`
	}

	AnalyticsSummaryResponse struct {
		Range    string         `json:"range"`
		Start    time.Time      `json:"start"`
		End      time.Time      `json:"end"`
		Consumed StateBreakdown `json:"consumed"`
		Donated  StateBreakdown `json:"donated"`
		Expired  StateBreakdown `json:"expired"`
	}
)
