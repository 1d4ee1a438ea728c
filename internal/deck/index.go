package deck

import "time"

// DefaultDayCount is the number of day slots shown when a deck has no buckets.
const DefaultDayCount = 7

// SelectTodayBucketIndex maps the weekday of now to a bucket index, with
// Monday as 0 and Sunday as 6, wrapped into [0, totalDays).
// A non-positive totalDays yields 0.
func SelectTodayBucketIndex(now time.Time, totalDays int) int {
	if totalDays <= 0 {
		return 0
	}
	weekday := (int(now.Weekday()) + 6) % 7
	return weekday % totalDays
}

// ResolveBucket returns the bucket at index, clamped to the last bucket.
// With no buckets it returns an empty synthetic bucket numbered index+1.
func ResolveBucket(buckets []Bucket, index int) Bucket {
	if index < 0 {
		index = 0
	}
	if len(buckets) == 0 {
		return Bucket{Day: index + 1, Cards: []CardID{}}
	}
	if index > len(buckets)-1 {
		index = len(buckets) - 1
	}
	return buckets[index]
}

// MaterializeCards resolves bucket ids to cards in bucket order.
// Ids missing from byID are dropped.
func MaterializeCards(bucket Bucket, byID map[CardID]Card) []Card {
	cards := make([]Card, 0, len(bucket.Cards))
	for _, id := range bucket.Cards {
		if c, ok := byID[id]; ok {
			cards = append(cards, c)
		}
	}
	return cards
}

// Index is a read-only lookup over a Deck, built once per load.
type Index struct {
	deck Deck
	byID map[CardID]Card
}

// NewIndex builds an Index. Later duplicates of a card id replace earlier ones.
func NewIndex(d Deck) *Index {
	byID := make(map[CardID]Card, len(d.Cards))
	for _, c := range d.Cards {
		byID[c.ID] = c
	}
	return &Index{deck: d, byID: byID}
}

// Deck returns the indexed deck.
func (ix *Index) Deck() Deck { return ix.deck }

// Card looks up a card by id.
func (ix *Index) Card(id CardID) (Card, bool) {
	c, ok := ix.byID[id]
	return c, ok
}

// Buckets returns the deck's day buckets in order.
func (ix *Index) Buckets() []Bucket { return ix.deck.Days }

// TotalDays is the number of buckets in the deck.
func (ix *Index) TotalDays() int { return len(ix.deck.Days) }

// DayCount is the number of selectable days: the bucket count, or
// DefaultDayCount when the deck has none.
func (ix *Index) DayCount() int {
	if n := len(ix.deck.Days); n > 0 {
		return n
	}
	return DefaultDayCount
}

// Bucket resolves the bucket at index.
func (ix *Index) Bucket(index int) Bucket {
	return ResolveBucket(ix.deck.Days, index)
}

// Cards returns the resolved cards of the bucket at index.
func (ix *Index) Cards(index int) []Card {
	return MaterializeCards(ix.Bucket(index), ix.byID)
}

// TodayIndex selects today's bucket index.
func (ix *Index) TodayIndex(now time.Time) int {
	return SelectTodayBucketIndex(now, ix.DayCount())
}
