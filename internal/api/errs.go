package api

import "errors"

// errEmptyPrompt indicates a chat turn with no prompt and no pending
// selected question.
var errEmptyPrompt = errors.New("api: prompt is empty")
