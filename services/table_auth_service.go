package services

import (
	"context"
	"time"

	"table-order/models"
	"table-order/utils"
)

// TableFinder resolves and persists tables for the occupancy state machine.
type TableFinder interface {
	GetByNumber(ctx context.Context, storeID int, tableNumber string) (*models.Table, error)
	Save(ctx context.Context, table *models.Table) error
}

// TableAuthService logs a table device in and advances the table's occupancy
// state machine.
type TableAuthService struct {
	tables TableFinder
}

func NewTableAuthService(tables TableFinder) *TableAuthService {
	return &TableAuthService{tables: tables}
}

// Login resolves the table and, when it is AVAILABLE, opens a customer
// session (IN_USE + session start + one history entry). A repeated login on
// an IN_USE table changes nothing. Returns the table and a table JWT.
func (s *TableAuthService) Login(ctx context.Context, storeID int, tableNumber string) (*models.Table, string, error) {
	table, err := s.tables.GetByNumber(ctx, storeID, tableNumber)
	if err != nil {
		return nil, "", err
	}
	if table == nil {
		return nil, "", models.NewNotFoundError("table")
	}

	if table.BeginSession(time.Now()) {
		if err := s.tables.Save(ctx, table); err != nil {
			return nil, "", err
		}
	}

	token, err := utils.GenerateTableToken(table.StoreID, table.ID, table.TableNumber)
	if err != nil {
		return nil, "", err
	}

	return table, token, nil
}

// CloseSession is the reverse transition, used by staff action or a session
// timeout. Same contract as login: status, timestamp and history entry are
// saved together.
func (s *TableAuthService) CloseSession(ctx context.Context, storeID int, tableNumber, changedBy string) (*models.Table, error) {
	table, err := s.tables.GetByNumber(ctx, storeID, tableNumber)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, models.NewNotFoundError("table")
	}

	if table.EndSession(changedBy, time.Now()) {
		if err := s.tables.Save(ctx, table); err != nil {
			return nil, err
		}
	}

	return table, nil
}
