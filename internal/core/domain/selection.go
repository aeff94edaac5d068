package domain

import (
	"errors"
	"time"
)

var ErrAlreadyChosen = errors.New("already chosen for this quarter and location")

// Selection records one employee chosen by a user for a given location and
// quarter. A batch of selections created by a single choose request shares
// one QuarterStart value.
type Selection struct {
	UserName     string    `json:"userName" bson:"userName"`
	Location     string    `json:"location" bson:"location"`
	Employee     string    `json:"employee" bson:"employee"`
	QuarterStart time.Time `json:"quarterStart" bson:"quarterStart"`
}

// SelectionEvent is the claim marker for one choose request. A unique index
// over (userName, location, quarterStart) makes its insert the conditional
// write that guarantees at most one selection batch per user, location and
// quarter, even under concurrent requests.
type SelectionEvent struct {
	UserName     string    `bson:"userName"`
	Location     string    `bson:"location"`
	QuarterStart time.Time `bson:"quarterStart"`
	CreatedAt    time.Time `bson:"created_at"`
}
