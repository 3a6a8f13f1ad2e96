// Package shard bounds the fan-out of parallel DynamoDB scans.
package shard

// MaxSegments bounds the scan fan-out of a single operation.
const MaxSegments = 16

// Clamp limits a requested segment count to 1..MaxSegments.
func Clamp(segments int) int {
	switch {
	case segments < 1:
		return 1
	case segments > MaxSegments:
		return MaxSegments
	}
	return segments
}
