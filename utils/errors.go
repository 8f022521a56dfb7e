package utils

import "errors"

var errEmptyArtifact = errors.New("empty file")
