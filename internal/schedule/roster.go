package schedule

import (
	"errors"

	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/model"
	"github.com/google/uuid"
)

var (
	ErrAlreadyEnrolled = errors.New("member is already enrolled in this training")
	ErrNotEnrolled     = errors.New("member is not enrolled in this training")
	ErrNoFreeSlot      = errors.New("basic list has no free slot")
	ErrEmptyReserve    = errors.New("reserve list is empty")
)

// Placement tells a caller which list an enrollment landed on.
type Placement string

const (
	PlacementBasic   Placement = "basic"
	PlacementReserve Placement = "reserve"
)

// Enroll adds the participant to the basic list while a slot is free and
// to the reserve list otherwise. Both lists keep arrival order.
func Enroll(t *model.GroupTraining, p model.Participant) (Placement, error) {
	if enrolled(t, p.UserID) {
		return "", ErrAlreadyEnrolled
	}
	if len(t.BasicList) < t.Capacity {
		t.BasicList = append(t.BasicList, p)
		return PlacementBasic, nil
	}
	t.ReserveList = append(t.ReserveList, p)
	return PlacementReserve, nil
}

// Cancel removes the member from whichever list holds them. It never moves
// a reserve-list member into the vacated basic slot; promotion is a
// separate operation the caller has to invoke explicitly.
func Cancel(t *model.GroupTraining, userID uuid.UUID) error {
	if list, ok := remove(t.BasicList, userID); ok {
		t.BasicList = list
		return nil
	}
	if list, ok := remove(t.ReserveList, userID); ok {
		t.ReserveList = list
		return nil
	}
	return ErrNotEnrolled
}

// Promote moves the first reserve-list member into a free basic slot.
func Promote(t *model.GroupTraining) (model.Participant, error) {
	if len(t.BasicList) >= t.Capacity {
		return model.Participant{}, ErrNoFreeSlot
	}
	if len(t.ReserveList) == 0 {
		return model.Participant{}, ErrEmptyReserve
	}
	p := t.ReserveList[0]
	t.ReserveList = t.ReserveList[1:]
	t.BasicList = append(t.BasicList, p)
	return p, nil
}

func enrolled(t *model.GroupTraining, userID uuid.UUID) bool {
	for _, p := range t.BasicList {
		if p.UserID == userID {
			return true
		}
	}
	for _, p := range t.ReserveList {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

func remove(list []model.Participant, userID uuid.UUID) ([]model.Participant, bool) {
	for i, p := range list {
		if p.UserID == userID {
			return append(list[:i:i], list[i+1:]...), true
		}
	}
	return list, false
}
