package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
)

type stubTx struct{ pgx.Tx }

func TestTxFromContext_Nil(t *testing.T) {
	if tx := TxFromContext(context.Background()); tx != nil {
		t.Errorf("expected nil without a transaction, got %v", tx)
	}
}

func TestTxFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), txKey, "not a tx")
	if tx := TxFromContext(ctx); tx != nil {
		t.Errorf("expected nil for wrong type in context, got %v", tx)
	}
}

func TestTxFromContext_ReturnsStoredTx(t *testing.T) {
	want := stubTx{}
	ctx := context.WithValue(context.Background(), txKey, pgx.Tx(want))
	got := TxFromContext(ctx)
	if got != pgx.Tx(want) {
		t.Errorf("expected the stored transaction back, got %v", got)
	}
}
