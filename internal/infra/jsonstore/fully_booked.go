package jsonstore

import (
	"context"
	"slices"
)

type fullyBookedRepo struct {
	tx *docTx
}

func (r *fullyBookedRepo) Add(_ context.Context, date string) (bool, error) {
	doc, err := r.tx.loadAvailability()
	if err != nil {
		return false, err
	}
	idx, found := slices.BinarySearch(doc.FullyBookedDates, date)
	if found {
		return false, nil
	}
	if err := r.tx.markDirty(&r.tx.dirtyAvailability); err != nil {
		return false, err
	}
	doc.FullyBookedDates = slices.Insert(doc.FullyBookedDates, idx, date)
	return true, nil
}

func (r *fullyBookedRepo) Remove(_ context.Context, date string) error {
	doc, err := r.tx.loadAvailability()
	if err != nil {
		return err
	}
	idx, found := slices.BinarySearch(doc.FullyBookedDates, date)
	if !found {
		return nil
	}
	if err := r.tx.markDirty(&r.tx.dirtyAvailability); err != nil {
		return err
	}
	doc.FullyBookedDates = slices.Delete(doc.FullyBookedDates, idx, idx+1)
	return nil
}

func (r *fullyBookedRepo) List(_ context.Context) ([]string, error) {
	doc, err := r.tx.loadAvailability()
	if err != nil {
		return nil, err
	}
	return slices.Clone(doc.FullyBookedDates), nil
}
