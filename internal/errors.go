package internal

import "errors"

var ErrSlugExists = errors.New("slug already exists")
var ErrLinkNotFound = errors.New("link not found")
var ErrRecommendationNotFound = errors.New("recommendation not found")
var ErrRecommendationAccepted = errors.New("recommendation already accepted")
