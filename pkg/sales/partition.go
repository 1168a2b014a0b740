//-------------------------------------------------------------------------
//
// pgEdge Sales Metrics
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales

import (
	"fmt"
	"strconv"
	"time"
)

// Partition names the grouping key for aggregate and window operations.
type Partition string

const (
	ByStore      Partition = "store"
	ByDept       Partition = "dept"
	ByStoreDept  Partition = "store_dept"
	ByStoreMonth Partition = "store_month"
)

// GroupKey identifies one group within a partition. Components outside the
// partition are zero: a ByStore key only sets Store, a ByStoreMonth key
// sets Store, Year and Month.
type GroupKey struct {
	Store int
	Dept  int
	Year  int
	Month time.Month
}

func (k GroupKey) less(o GroupKey) bool {
	if k.Store != o.Store {
		return k.Store < o.Store
	}
	if k.Dept != o.Dept {
		return k.Dept < o.Dept
	}
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

func (p Partition) valid() bool {
	switch p {
	case ByStore, ByDept, ByStoreDept, ByStoreMonth:
		return true
	}
	return false
}

func (p Partition) keyOf(r Record) GroupKey {
	switch p {
	case ByStore:
		return GroupKey{Store: r.Store}
	case ByDept:
		return GroupKey{Dept: r.Dept}
	case ByStoreDept:
		return GroupKey{Store: r.Store, Dept: r.Dept}
	case ByStoreMonth:
		return GroupKey{Store: r.Store, Year: r.Date.Year(), Month: r.Date.Month()}
	}
	return GroupKey{}
}

// Label renders a group key for display, e.g. "store 20" or
// "store 20 2012-02".
func (p Partition) Label(k GroupKey) string {
	switch p {
	case ByStore:
		return "store " + strconv.Itoa(k.Store)
	case ByDept:
		return "dept " + strconv.Itoa(k.Dept)
	case ByStoreDept:
		return fmt.Sprintf("store %d dept %d", k.Store, k.Dept)
	case ByStoreMonth:
		return fmt.Sprintf("store %d %04d-%02d", k.Store, k.Year, int(k.Month))
	}
	return ""
}

func checkPartitionField(p Partition, f Field) error {
	if !p.valid() {
		return fmt.Errorf("%w: unknown partition key %q", ErrInvalidParameter, p)
	}
	if !f.valid() {
		return fmt.Errorf("%w: unknown field %q", ErrInvalidParameter, f)
	}
	return nil
}
