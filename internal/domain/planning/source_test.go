package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railops/rakeplanner/internal/domain/planning"
	"github.com/railops/rakeplanner/test/helpers"
)

func TestSelectSource_PinnedStockyardIsAuthoritative(t *testing.T) {
	// Pinned yard holds no COAL at all; the pin still wins
	pinned := helpers.NewStockyard("SY001", map[string]float64{})
	rich := helpers.NewStockyard("SY002", map[string]float64{"COAL": 50000})
	ledger := planning.NewLedger([]*planning.Stockyard{pinned, rich})

	order := helpers.NewOrder("ORD001", 2500, 1, helpers.WithSourceStockyard(pinned.ID))

	source := planning.SelectSource(order, []*planning.Stockyard{pinned, rich}, ledger)

	require.NotNil(t, source)
	assert.Equal(t, "SY001", source.Code)
}

func TestSelectSource_UnknownPinReturnsNone(t *testing.T) {
	sy := helpers.NewStockyard("SY001", map[string]float64{"COAL": 50000})
	ledger := planning.NewLedger([]*planning.Stockyard{sy})

	order := helpers.NewOrder("ORD001", 2500, 1, helpers.WithSourceStockyard("no-such-id"))

	assert.Nil(t, planning.SelectSource(order, []*planning.Stockyard{sy}, ledger))
}

func TestSelectSource_NearestWhenGeocoded(t *testing.T) {
	// Durgapur is much closer to Kolkata than Bhilai is
	bhilai := helpers.NewStockyard("SY-BHILAI", map[string]float64{"COAL": 10000},
		helpers.WithYardCoords(21.21, 81.38))
	durgapur := helpers.NewStockyard("SY-DURGAPUR", map[string]float64{"COAL": 10000},
		helpers.WithYardCoords(23.55, 87.32))
	ledger := planning.NewLedger([]*planning.Stockyard{bhilai, durgapur})

	order := helpers.NewOrder("ORD001", 2500, 1,
		helpers.WithDestinationCoords("Kolkata", 22.57, 88.36))

	source := planning.SelectSource(order, []*planning.Stockyard{bhilai, durgapur}, ledger)

	require.NotNil(t, source)
	assert.Equal(t, "SY-DURGAPUR", source.Code)
}

func TestSelectSource_MostStockWhenUngeoded(t *testing.T) {
	lean := helpers.NewStockyard("SY001", map[string]float64{"COAL": 5000})
	rich := helpers.NewStockyard("SY002", map[string]float64{"COAL": 40000})
	ledger := planning.NewLedger([]*planning.Stockyard{lean, rich})

	order := helpers.NewOrder("ORD001", 2500, 1, helpers.WithDestination("Dest 1"))

	source := planning.SelectSource(order, []*planning.Stockyard{lean, rich}, ledger)

	require.NotNil(t, source)
	assert.Equal(t, "SY002", source.Code)
}

func TestSelectSource_NoneWhenInventoryShort(t *testing.T) {
	sy := helpers.NewStockyard("SY001", map[string]float64{"COAL": 2000})
	ledger := planning.NewLedger([]*planning.Stockyard{sy})

	order := helpers.NewOrder("ORD001", 2500, 1)

	assert.Nil(t, planning.SelectSource(order, []*planning.Stockyard{sy}, ledger))
}

func TestSelectSource_RespectsLedgerReservations(t *testing.T) {
	sy := helpers.NewStockyard("SY001", map[string]float64{"COAL": 4000})
	ledger := planning.NewLedger([]*planning.Stockyard{sy})
	ledger.Reserve("SY001", "COAL", 3000)

	order := helpers.NewOrder("ORD001", 2500, 1)

	assert.Nil(t, planning.SelectSource(order, []*planning.Stockyard{sy}, ledger))
}
