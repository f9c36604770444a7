package utils

import (
	"net/url"
	"strconv"
)

// RequestFilter carries the narrowing filters of a repair-request list query.
// These compose with the role scope via AND and can never widen it.
type RequestFilter struct {
	Status      string
	Priority    string
	EquipmentID uint64
	Search      string
	Limit       uint64
	Offset      uint64
}

func ParseRequestFilter(query url.Values) RequestFilter {
	filter := RequestFilter{
		Limit:  20,
		Offset: 0,
	}

	filter.Status = query.Get("status")
	filter.Priority = query.Get("priority")
	filter.Search = query.Get("search")

	if eq := query.Get("equipment"); eq != "" {
		if id, err := strconv.ParseUint(eq, 10, 64); err == nil {
			filter.EquipmentID = id
		}
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.ParseUint(limitStr, 10, 64); err == nil && l > 0 && l <= 100 {
			filter.Limit = l
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if o, err := strconv.ParseUint(offsetStr, 10, 64); err == nil {
			filter.Offset = o
		}
	}

	return filter
}

// EquipmentFilter mirrors the equipment list query parameters.
type EquipmentFilter struct {
	CategoryID uint64
	IsActive   *bool
	Search     string
	Limit      uint64
	Offset     uint64
}

func ParseEquipmentFilter(query url.Values) EquipmentFilter {
	filter := EquipmentFilter{
		Limit:  20,
		Offset: 0,
	}

	filter.Search = query.Get("search")

	if cat := query.Get("category"); cat != "" {
		if id, err := strconv.ParseUint(cat, 10, 64); err == nil {
			filter.CategoryID = id
		}
	}
	if active := query.Get("is_active"); active != "" {
		v := active == "true"
		filter.IsActive = &v
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.ParseUint(limitStr, 10, 64); err == nil && l > 0 && l <= 100 {
			filter.Limit = l
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if o, err := strconv.ParseUint(offsetStr, 10, 64); err == nil {
			filter.Offset = o
		}
	}

	return filter
}
