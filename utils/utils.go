package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"os"

	"github.com/DrDelphi/LotteryDeployer/data"
)

// ReadArtifact - reads a compiled contract from disk. Any failure, including
// an empty file, is reported as an ArtifactNotFoundError.
func ReadArtifact(path string) ([]byte, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, data.NewArtifactNotFoundError(path, err)
	}
	if len(code) == 0 {
		return nil, data.NewArtifactNotFoundError(path, errEmptyArtifact)
	}

	return code, nil
}

// Checksum - hex encoded sha256 of the bytecode, as the chain reports it
func Checksum(code []byte) string {
	sum := sha256.Sum256(code)
	return hex.EncodeToString(sum[:])
}

func ShortenAddress(address string) string {
	l := len(address)
	if l < 14 {
		return address
	}

	return address[:8] + "..." + address[l-6:]
}
