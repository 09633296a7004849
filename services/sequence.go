package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"table-order/models"
)

// LastOrderFinder is the slice of order storage the allocator needs to seed
// a table's counter after startup.
type LastOrderFinder interface {
	GetLastOrderForTable(ctx context.Context, tableNumber string) (*models.Order, error)
}

// SequenceAllocator hands out per-table order sequence numbers: 1, 2, 3, ...
// with no repeats, even under concurrent callers. Each table has its own
// lock, so orders for different tables never wait on each other.
type SequenceAllocator struct {
	orders LastOrderFinder

	mu     sync.Mutex
	tables map[string]*tableCounter
}

type tableCounter struct {
	mu     sync.Mutex
	seeded bool
	last   int
}

func NewSequenceAllocator(orders LastOrderFinder) *SequenceAllocator {
	return &SequenceAllocator{
		orders: orders,
		tables: make(map[string]*tableCounter),
	}
}

// Allocate returns the next sequence for the table.
func (a *SequenceAllocator) Allocate(ctx context.Context, tableNumber string) (int, error) {
	return a.AllocateAndWrite(ctx, tableNumber, nil)
}

// AllocateAndWrite computes the next sequence and runs write with it while
// still holding the table's lock, so the allocation and the durable order
// write form one critical section. The counter only advances when write
// succeeds; on ErrOrderNumberTaken the counter is reseeded from storage and
// the write retried once before a ConflictError is surfaced.
func (a *SequenceAllocator) AllocateAndWrite(ctx context.Context, tableNumber string, write func(seq int) error) (int, error) {
	c := a.counter(tableNumber)
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.seeded {
		last, err := a.lastFromStorage(ctx, tableNumber)
		if err != nil {
			return 0, err
		}
		c.last = last
		c.seeded = true
	}

	seq := c.last + 1
	if write != nil {
		err := write(seq)
		if errors.Is(err, models.ErrOrderNumberTaken) {
			// Someone outside this process took the number. Reseed and retry once.
			last, serr := a.lastFromStorage(ctx, tableNumber)
			if serr != nil {
				return 0, serr
			}
			seq = last + 1
			err = write(seq)
			if errors.Is(err, models.ErrOrderNumberTaken) {
				return 0, models.NewConflictError(
					fmt.Sprintf("order number collision on table %s", tableNumber))
			}
		}
		if err != nil {
			return 0, err
		}
	}

	c.last = seq
	return seq, nil
}

func (a *SequenceAllocator) counter(tableNumber string) *tableCounter {
	a.mu.Lock()
	defer a.mu.Unlock()

	c, ok := a.tables[tableNumber]
	if !ok {
		c = &tableCounter{}
		a.tables[tableNumber] = c
	}
	return c
}

func (a *SequenceAllocator) lastFromStorage(ctx context.Context, tableNumber string) (int, error) {
	lastOrder, err := a.orders.GetLastOrderForTable(ctx, tableNumber)
	if err != nil {
		return 0, err
	}
	if lastOrder == nil {
		return 0, nil
	}

	seq, ok := parseSequence(lastOrder.OrderNumber)
	if !ok {
		// Malformed number in storage. Continuing from 0 keeps orders flowing;
		// the record itself needs manual investigation.
		log.Printf("Malformed order number %q on table %s, treating last sequence as 0",
			lastOrder.OrderNumber, tableNumber)
		return 0, nil
	}
	return seq, nil
}

// parseSequence extracts the numeric suffix of an order number like "T01-003".
func parseSequence(orderNumber string) (int, bool) {
	idx := strings.LastIndex(orderNumber, "-")
	if idx < 0 || idx == len(orderNumber)-1 {
		return 0, false
	}
	seq, err := strconv.Atoi(orderNumber[idx+1:])
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}

// FormatOrderNumber renders the wire form of a table sequence, e.g. "T01-001".
func FormatOrderNumber(tableNumber string, seq int) string {
	return fmt.Sprintf("T%s-%03d", tableNumber, seq)
}
