package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/travelmate/internal/domain"
	"github.com/josh-kwaku/travelmate/internal/ledger"
	"github.com/josh-kwaku/travelmate/internal/metrics"
	"github.com/josh-kwaku/travelmate/internal/repository"
	"github.com/josh-kwaku/travelmate/internal/service"
	"github.com/josh-kwaku/travelmate/internal/testutil"
)

type services struct {
	trips        *service.TripService
	participants *service.ParticipantService
	expenses     *service.ExpenseService
	settlements  *service.SettlementService
	currencies   *service.CurrencyService
}

func setupServices(t *testing.T, db *sql.DB) services {
	t.Helper()

	trips := repository.NewTripRepository(db)
	participants := repository.NewParticipantRepository(db)
	expenses := repository.NewExpenseRepository(db)
	currencies := repository.NewCurrencyRepository(db)
	transfers := repository.NewTransferRepository(db)

	return services{
		trips:        service.NewTripService(trips, db),
		participants: service.NewParticipantService(trips, participants, expenses, db),
		expenses:     service.NewExpenseService(trips, participants, expenses, currencies, "KRW", db),
		settlements: service.NewSettlementService(
			repository.NewSnapshotRepository(db), trips, transfers, metrics.New(), db,
		),
		currencies: service.NewCurrencyService(currencies, "KRW", db),
	}
}

func TestCreateExpense_UnknownCurrencyWritesNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	tripID := testutil.SeedTrip(t, db, "Busan")
	a := testutil.SeedParticipant(t, db, tripID, "A")
	testutil.SeedParticipant(t, db, tripID, "B")

	_, err := svc.expenses.Create(ctx, tripID, service.ExpenseInput{
		PayerID:      a,
		Amount:       decimal.NewFromInt(50),
		CurrencyCode: "XYZ",
	})

	require.ErrorIs(t, err, domain.ErrUnknownCurrency)
	assert.Contains(t, err.Error(), "XYZ")
	assert.Zero(t, testutil.CountRows(t, db, "expenses", ""))
	assert.Zero(t, testutil.CountRows(t, db, "expense_shares", ""))
}

func TestCreateExpense_SplitsAmongParticipants(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	tripID := testutil.SeedTrip(t, db, "Jeju")
	a := testutil.SeedParticipant(t, db, tripID, "A")
	b := testutil.SeedParticipant(t, db, tripID, "B")
	c := testutil.SeedParticipant(t, db, tripID, "C")

	e, err := svc.expenses.Create(ctx, tripID, service.ExpenseInput{
		PayerID:      a,
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "USD",
	})
	require.NoError(t, err)

	stored, err := svc.expenses.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "USD", stored.CurrencyCode)
	assert.Equal(t, "A", stored.PayerName)
	assert.True(t, stored.AmountBase.Equal(decimal.NewFromInt(130000)))

	shares := testutil.ShareAmounts(t, db, e.ID)
	require.Len(t, shares, 3)
	for _, id := range []domain.ParticipantID{a, b, c} {
		assert.True(t, shares[id].Equal(decimal.RequireFromString("43333.33")), "share of %s", id)
	}
}

func TestCreateExpense_PayerMustBeOnTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	tripID := testutil.SeedTrip(t, db, "Seoul")
	otherTrip := testutil.SeedTrip(t, db, "Daegu")
	testutil.SeedParticipant(t, db, tripID, "A")
	outsider := testutil.SeedParticipant(t, db, otherTrip, "Z")

	_, err := svc.expenses.Create(ctx, tripID, service.ExpenseInput{
		PayerID: outsider,
		Amount:  decimal.NewFromInt(1000),
	})

	require.ErrorIs(t, err, domain.ErrParticipantNotFound)
	assert.Zero(t, testutil.CountRows(t, db, "expenses", ""))
}

func TestUpdateExpense_RegeneratesShares(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	tripID := testutil.SeedTrip(t, db, "Gangneung")
	a := testutil.SeedParticipant(t, db, tripID, "A")
	b := testutil.SeedParticipant(t, db, tripID, "B")

	e, err := svc.expenses.Create(ctx, tripID, service.ExpenseInput{PayerID: a, Amount: decimal.NewFromInt(30000)})
	require.NoError(t, err)

	c := testutil.SeedParticipant(t, db, tripID, "C")

	updated, err := svc.expenses.Update(ctx, e.ID, service.ExpenseInput{
		PayerID:      b,
		Amount:       decimal.NewFromInt(30),
		CurrencyCode: "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, e.PaidAt.Unix(), updated.PaidAt.Unix())

	stored, err := svc.expenses.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, b, stored.PayerID)
	assert.True(t, stored.AmountBase.Equal(decimal.NewFromInt(39000)))

	shares := testutil.ShareAmounts(t, db, e.ID)
	require.Len(t, shares, 3)
	for _, id := range []domain.ParticipantID{a, b, c} {
		assert.True(t, shares[id].Equal(decimal.NewFromInt(13000)), "share of %s", id)
	}
}

func TestUpdateExpense_UnknownCurrencyKeepsPreviousRows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	tripID := testutil.SeedTrip(t, db, "Sokcho")
	a := testutil.SeedParticipant(t, db, tripID, "A")
	testutil.SeedParticipant(t, db, tripID, "B")

	e, err := svc.expenses.Create(ctx, tripID, service.ExpenseInput{PayerID: a, Amount: decimal.NewFromInt(20000)})
	require.NoError(t, err)

	_, err = svc.expenses.Update(ctx, e.ID, service.ExpenseInput{PayerID: a, Amount: decimal.NewFromInt(5), CurrencyCode: "XYZ"})
	require.ErrorIs(t, err, domain.ErrUnknownCurrency)

	stored, err := svc.expenses.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, stored.AmountBase.Equal(decimal.NewFromInt(20000)))
	assert.Len(t, testutil.ShareAmounts(t, db, e.ID), 2)
}

func TestRateChangeDoesNotRewriteExistingExpenses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	tripID := testutil.SeedTrip(t, db, "Osaka")
	a := testutil.SeedParticipant(t, db, tripID, "A")

	e, err := svc.expenses.Create(ctx, tripID, service.ExpenseInput{PayerID: a, Amount: decimal.NewFromInt(10), CurrencyCode: "USD"})
	require.NoError(t, err)

	require.NoError(t, svc.currencies.SetRate(ctx, "USD", decimal.NewFromInt(1400)))

	stored, err := svc.expenses.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, stored.AmountBase.Equal(decimal.NewFromInt(13000)))
}

func TestRemoveParticipant_Cascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	tripID := testutil.SeedTrip(t, db, "Tokyo")
	a := testutil.SeedParticipant(t, db, tripID, "A")
	b := testutil.SeedParticipant(t, db, tripID, "B")

	paidByA, err := svc.expenses.Create(ctx, tripID, service.ExpenseInput{PayerID: a, Amount: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	paidByB, err := svc.expenses.Create(ctx, tripID, service.ExpenseInput{PayerID: b, Amount: decimal.NewFromInt(2000)})
	require.NoError(t, err)

	require.NoError(t, svc.participants.Remove(ctx, tripID, a))

	assert.Zero(t, testutil.CountRows(t, db, "expenses", "id = $1", paidByA.ID))
	assert.Zero(t, testutil.CountRows(t, db, "expense_shares", "expense_id = $1", paidByA.ID))
	assert.Zero(t, testutil.CountRows(t, db, "expense_shares", "user_id = $1", a))
	assert.Equal(t, 1, testutil.CountRows(t, db, "expense_shares", "expense_id = $1", paidByB.ID))

	participants, err := svc.participants.List(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, b, participants[0].ID)

	err = svc.participants.Remove(ctx, tripID, a)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddParticipant_ReusesIdentityByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	first := testutil.SeedTrip(t, db, "Hanoi")
	second := testutil.SeedTrip(t, db, "Da Nang")

	p1, err := svc.participants.Add(ctx, first, "Minji")
	require.NoError(t, err)
	p2, err := svc.participants.Add(ctx, second, "Minji")
	require.NoError(t, err)
	again, err := svc.participants.Add(ctx, second, "Minji")
	require.NoError(t, err)

	assert.Equal(t, p1.ID, p2.ID)
	assert.Equal(t, p1.ID, again.ID)
	assert.Equal(t, 1, testutil.CountRows(t, db, "users", "name = $1", "Minji"))
	assert.Equal(t, 1, testutil.CountRows(t, db, "trip_participants", "trip_id = $1", second))

	_, err = svc.participants.Add(ctx, uuid.New(), "Ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, testutil.CountRows(t, db, "users", "name = $1", "Ghost"))
}

func TestSettlement_RoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	tripID := testutil.SeedTrip(t, db, "Gyeongju")
	a := testutil.SeedParticipant(t, db, tripID, "A")
	testutil.SeedParticipant(t, db, tripID, "B")

	_, err := svc.expenses.Create(ctx, tripID, service.ExpenseInput{PayerID: a, Amount: decimal.NewFromInt(30000), CurrencyCode: "KRW"})
	require.NoError(t, err)

	before, err := svc.settlements.Compute(ctx, tripID)
	require.NoError(t, err)
	assert.Equal(t, []ledger.SuggestedTransfer{{From: "B", To: "A", Amount: 15000}}, before.Suggestions)

	_, err = svc.settlements.ConfirmTransfer(ctx, tripID, service.ConfirmTransferInput{
		PayerName: "B", ReceiverName: "A", RawAmount: "10000",
	})
	require.NoError(t, err)

	after, err := svc.settlements.Compute(ctx, tripID)
	require.NoError(t, err)
	assert.True(t, after.Positions[0].Balance.Equal(decimal.NewFromInt(5000)))
	assert.True(t, after.Positions[1].Balance.Equal(decimal.NewFromInt(-5000)))
	assert.Equal(t, []ledger.SuggestedTransfer{{From: "B", To: "A", Amount: 5000}}, after.Suggestions)

	transfers, err := svc.settlements.ListTransfers(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.True(t, transfers[0].Done)
}

func TestConfirmTransfer_MalformedAmountRecordsZero(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	tripID := testutil.SeedTrip(t, db, "Incheon")

	tr, err := svc.settlements.ConfirmTransfer(ctx, tripID, service.ConfirmTransferInput{
		PayerName: "B", ReceiverName: "A", RawAmount: "lots",
	})
	require.NoError(t, err)
	assert.Zero(t, tr.Amount)
	assert.Equal(t, 1, testutil.CountRows(t, db, "settlement_transfers", "trip_id = $1 AND amount = 0", tripID))

	_, err = svc.settlements.ConfirmTransfer(ctx, uuid.New(), service.ConfirmTransferInput{
		PayerName: "B", ReceiverName: "A", RawAmount: "1",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteTrip_RemovesEverything(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupServices(t, db)
	ctx := context.Background()

	tripID := testutil.SeedTrip(t, db, "Pohang")
	a := testutil.SeedParticipant(t, db, tripID, "A")
	testutil.SeedParticipant(t, db, tripID, "B")
	_, err := svc.expenses.Create(ctx, tripID, service.ExpenseInput{PayerID: a, Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	_, err = svc.settlements.ConfirmTransfer(ctx, tripID, service.ConfirmTransferInput{PayerName: "B", ReceiverName: "A", RawAmount: "50"})
	require.NoError(t, err)

	require.NoError(t, svc.trips.Delete(ctx, tripID))

	assert.Zero(t, testutil.CountRows(t, db, "expenses", ""))
	assert.Zero(t, testutil.CountRows(t, db, "expense_shares", ""))
	assert.Zero(t, testutil.CountRows(t, db, "trip_participants", ""))
	assert.Zero(t, testutil.CountRows(t, db, "settlement_transfers", ""))

	_, err = svc.settlements.Compute(ctx, tripID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
