package journal

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func messages(events []Event) []string {
	return lo.Map(events, func(e Event, _ int) string { return e.Message })
}

func TestEventLog_Wraparound(t *testing.T) {
	l := newEventLog(3)
	assert.Empty(t, l.last(2, nil))

	for _, m := range []string{"goToFo", "addToCartByQuickView", "checkCartPage", "goToHomePage", "checkAddToCartButton"} {
		l.append(Event{Message: m})
	}

	assert.Equal(t, []string{"checkCartPage", "goToHomePage", "checkAddToCartButton"}, messages(l.last(10, nil)))
	assert.Equal(t, []string{"goToHomePage", "checkAddToCartButton"}, messages(l.last(2, nil)))
	assert.Equal(t, uint64(2), l.droppedCount())
}

func TestEventLog_FilterKeepsNewest(t *testing.T) {
	l := newEventLog(5)
	l.append(Event{Message: "a", Tag: "x"})
	l.append(Event{Message: "b", Tag: "y"})
	l.append(Event{Message: "c", Tag: "x"})
	l.append(Event{Message: "d", Tag: "x"})

	onlyX := func(e Event) bool { return e.Tag == "x" }
	assert.Equal(t, []string{"a", "c", "d"}, messages(l.last(5, onlyX)))
	assert.Equal(t, []string{"c", "d"}, messages(l.last(2, onlyX)))
	assert.Equal(t, uint64(0), l.droppedCount())
}

func TestEventLog_NonPositiveCount(t *testing.T) {
	l := newEventLog(3)
	l.append(Event{Message: "goToFo"})

	assert.Nil(t, l.last(0, nil))
	assert.Nil(t, l.last(-1, nil))
}

func TestEventLog_ZeroCapacityPanics(t *testing.T) {
	assert.Panics(t, func() {
		newEventLog(0)
	})
}
