package network

import (
	"github.com/DrDelphi/LotteryDeployer/data"
	abci "github.com/cometbft/cometbft/abci/types"
)

func convertEvents(events []abci.Event) []data.Event {
	res := make([]data.Event, 0, len(events))
	for _, ev := range events {
		converted := data.Event{Type: ev.Type, Attributes: make([]data.Attribute, 0, len(ev.Attributes))}
		for _, attr := range ev.Attributes {
			converted.Attributes = append(converted.Attributes, data.Attribute{Key: attr.Key, Value: attr.Value})
		}
		res = append(res, converted)
	}

	return res
}

// findAttribute returns the first value of eventType.key
func findAttribute(events []data.Event, eventType, key string) (string, bool) {
	for _, ev := range events {
		if ev.Type != eventType {
			continue
		}
		for _, attr := range ev.Attributes {
			if attr.Key == key {
				return attr.Value, true
			}
		}
	}

	return "", false
}
