package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"scm/internal/domain/model"
	repo "scm/internal/repository"
	"scm/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleOrders() []model.Order {
	return []model.Order{
		{ID: "ORD-1", BuyerName: "Budi", Date: "2026-10-01", TotalAmount: 300000, Location: "Jakarta Pusat", Status: model.OrderStatusShipped},
		{ID: "ORD-2", BuyerName: "Sari", Date: "2026-10-05", TotalAmount: 750000, Location: "Bandung", Status: model.OrderStatusPending},
		{ID: "ORD-3", BuyerName: "Agus", Date: "2026-10-03", TotalAmount: 150000, Location: "Surabaya", Status: model.OrderStatusShipped},
		{ID: "ORD-4", BuyerName: "Dewi", Date: "2026-09-28", TotalAmount: 50000, Location: "Kota Medan", Status: model.OrderStatusCancelled},
	}
}

func ids(orders []model.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestFilterOrders_ByStatus_SortedByDateDesc(t *testing.T) {
	got := usecase.FilterOrders(sampleOrders(), usecase.ReportFilter{Status: "Dikirim"})
	assert.Equal(t, []string{"ORD-3", "ORD-1"}, ids(got))
}

func TestFilterOrders_AllStatus(t *testing.T) {
	got := usecase.FilterOrders(sampleOrders(), usecase.ReportFilter{Status: usecase.StatusAll})
	assert.Equal(t, []string{"ORD-2", "ORD-3", "ORD-1", "ORD-4"}, ids(got))

	got = usecase.FilterOrders(sampleOrders(), usecase.ReportFilter{})
	assert.Len(t, got, 4)
}

func TestFilterOrders_Text(t *testing.T) {
	// 購入者名
	got := usecase.FilterOrders(sampleOrders(), usecase.ReportFilter{Text: "SARI"})
	assert.Equal(t, []string{"ORD-2"}, ids(got))

	// 配送先
	got = usecase.FilterOrders(sampleOrders(), usecase.ReportFilter{Text: "medan"})
	assert.Equal(t, []string{"ORD-4"}, ids(got))

	// IDは対象外
	got = usecase.FilterOrders(sampleOrders(), usecase.ReportFilter{Text: "ORD-1"})
	assert.Empty(t, got)
}

func TestFilterOrders_DateRangeInclusive(t *testing.T) {
	got := usecase.FilterOrders(sampleOrders(), usecase.ReportFilter{From: "2026-10-01", To: "2026-10-03"})
	assert.Equal(t, []string{"ORD-3", "ORD-1"}, ids(got))
}

func TestFilterOrders_DoesNotMutateInput(t *testing.T) {
	in := sampleOrders()
	usecase.FilterOrders(in, usecase.ReportFilter{})
	assert.Equal(t, sampleOrders(), in)
}

func TestAggregateOrders(t *testing.T) {
	a := usecase.AggregateOrders(sampleOrders())
	assert.Equal(t, 4, a.Count)
	assert.Equal(t, int64(1250000), a.TotalAmount)
	assert.Equal(t, "Rp 1.250.000", a.TotalText)

	empty := usecase.AggregateOrders(nil)
	assert.Equal(t, 0, empty.Count)
	assert.Equal(t, int64(0), empty.TotalAmount)
}

func TestCountByStatus(t *testing.T) {
	orders := append(sampleOrders(), model.Order{ID: "ORD-9", Status: "Hilang"})
	got := usecase.CountByStatus(orders)

	assert.Equal(t, []usecase.StatusCount{
		{Status: model.OrderStatusPending, Count: 1},
		{Status: model.OrderStatusShipped, Count: 2},
		{Status: model.OrderStatusReceived, Count: 0},
		{Status: model.OrderStatusCancelled, Count: 1},
		{Status: "Hilang", Count: 1},
	}, got)
}

func TestApplyUpdate(t *testing.T) {
	received := model.OrderStatusReceived
	got, found := usecase.ApplyUpdate(sampleOrders(), "ORD-2", usecase.OrderPatch{
		BuyerName: strPtr("Sari W."),
		Status:    &received,
	})
	require.True(t, found)
	assert.Equal(t, "Sari W.", got[1].BuyerName)
	assert.Equal(t, model.OrderStatusReceived, got[1].Status)
	// 他の項目はそのまま
	assert.Equal(t, "Bandung", got[1].Location)
	assert.Equal(t, sampleOrders()[0], got[0])
}

func TestApplyUpdate_AbsentIsNoop(t *testing.T) {
	got, found := usecase.ApplyUpdate(sampleOrders(), "ORD-404", usecase.OrderPatch{BuyerName: strPtr("x")})
	assert.False(t, found)
	assert.Equal(t, sampleOrders(), got)
}

func TestDeleteOrder(t *testing.T) {
	got, found := usecase.DeleteOrder(sampleOrders(), "ORD-3")
	assert.True(t, found)
	assert.Equal(t, []string{"ORD-1", "ORD-2", "ORD-4"}, ids(got))
}

func TestDeleteOrder_AbsentLeavesCollectionUnchanged(t *testing.T) {
	got, found := usecase.DeleteOrder(sampleOrders(), "ORD-404")
	assert.False(t, found)
	assert.Equal(t, sampleOrders(), got)
}

func TestExportDelimited(t *testing.T) {
	orders := []model.Order{
		{
			ID: "ORD-1", BuyerName: `Budi, "Boss"`, Date: "2026-10-01", TotalAmount: 1050000,
			Contact: "0812", Location: "Jakarta", Status: model.OrderStatusPending,
			Items: []model.CartItem{{Name: "Mouse", Quantity: 2}, {Name: "Keyboard", Quantity: 1}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, usecase.ExportDelimited(&buf, orders, ','))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Buyer Name,Date,Total,Contact,Location,Status,Items", lines[0])
	assert.Equal(t, `ORD-1,"Budi, ""Boss""",2026-10-01,1050000,0812,Jakarta,Pending,Mouse × 2; Keyboard × 1`, lines[1])
}

func TestExportDelimited_Semicolon(t *testing.T) {
	orders := []model.Order{
		{ID: "ORD-1", BuyerName: "Budi", Items: []model.CartItem{{Name: "Mouse", Quantity: 2}, {Name: "Pad", Quantity: 1}}},
	}

	var buf bytes.Buffer
	require.NoError(t, usecase.ExportDelimited(&buf, orders, ';'))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "ID;Buyer Name;Date;Total;Contact;Location;Status;Items", lines[0])
	// 区切り文字を含む項目はクォート
	assert.Equal(t, `ORD-1;Budi;;0;;;;"Mouse × 2; Pad × 1"`, lines[1])
}

func TestExportDelimited_InvalidDelimiter(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, usecase.ExportDelimited(&buf, sampleOrders(), '"'))
}

// =====================
// ReportUsecase
// =====================

func TestReportUsecase_List(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(OrderRepoMock)
	orderRepo.On("Load", mock.Anything).Return(sampleOrders())

	uc := usecase.NewReportUsecase(orderRepo)
	out, err := uc.List(ctx, usecase.ReportFilter{Status: "Dikirim"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ORD-3", "ORD-1"}, ids(out.Orders))
	assert.Equal(t, 2, out.Summary.Count)
	assert.Equal(t, int64(450000), out.Summary.TotalAmount)
}

func TestReportUsecase_List_InvalidDate(t *testing.T) {
	uc := usecase.NewReportUsecase(new(OrderRepoMock))

	_, err := uc.List(context.Background(), usecase.ReportFilter{From: "01/10/2026"})
	assertErrContains(t, err, "invalid from")
}

func TestReportUsecase_Update(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(OrderRepoMock)
	orderRepo.On("Load", mock.Anything).Return(sampleOrders())
	orderRepo.On("Save", mock.Anything, mock.MatchedBy(func(orders []model.Order) bool {
		return len(orders) == 4 && orders[0].Contact == "0899"
	})).Return(true).Once()

	uc := usecase.NewReportUsecase(orderRepo)
	found, err := uc.Update(ctx, "ORD-1", usecase.OrderPatch{Contact: strPtr("0899")})
	require.NoError(t, err)
	assert.True(t, found)

	orderRepo.AssertExpectations(t)
}

func TestReportUsecase_Update_AbsentDoesNotSave(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(OrderRepoMock)
	orderRepo.On("Load", mock.Anything).Return(sampleOrders())

	uc := usecase.NewReportUsecase(orderRepo)
	found, err := uc.Update(ctx, "ORD-404", usecase.OrderPatch{Contact: strPtr("0899")})
	require.NoError(t, err)
	assert.False(t, found)

	orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReportUsecase_Update_InvalidInput(t *testing.T) {
	uc := usecase.NewReportUsecase(new(OrderRepoMock))

	bad := model.OrderStatus("Hilang")
	_, err := uc.Update(context.Background(), "ORD-1", usecase.OrderPatch{Status: &bad})
	assertErrContains(t, err, "invalid status")

	_, err = uc.Update(context.Background(), "ORD-1", usecase.OrderPatch{Date: strPtr("2026-13-01")})
	assertErrContains(t, err, "invalid date")

	_, err = uc.Update(context.Background(), "ORD-1", usecase.OrderPatch{Date: strPtr("")})
	assertErrContains(t, err, "invalid date")
}

func TestReportUsecase_Delete(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(OrderRepoMock)
	orderRepo.On("Load", mock.Anything).Return(sampleOrders())
	orderRepo.On("Save", mock.Anything, mock.MatchedBy(func(orders []model.Order) bool {
		return len(orders) == 3
	})).Return(true).Once()

	uc := usecase.NewReportUsecase(orderRepo)
	found, err := uc.Delete(ctx, "ORD-2")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = uc.Delete(ctx, "ORD-404")
	require.NoError(t, err)
	assert.False(t, found)

	orderRepo.AssertExpectations(t)
}

// 保存できなければ 503
func TestReportUsecase_SaveFailure(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(OrderRepoMock)
	orderRepo.On("Load", mock.Anything).Return(sampleOrders())
	orderRepo.On("Save", mock.Anything, mock.Anything).Return(false)

	uc := usecase.NewReportUsecase(orderRepo)

	_, err := uc.Delete(ctx, "ORD-2")
	assert.True(t, errors.Is(err, repo.ErrStorageUnavailable))
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, he.Status)

	_, err = uc.Update(ctx, "ORD-1", usecase.OrderPatch{Contact: strPtr("0899")})
	assert.True(t, errors.Is(err, repo.ErrStorageUnavailable))
}

func TestReportUsecase_Summary(t *testing.T) {
	orderRepo := new(OrderRepoMock)
	orderRepo.On("Load", mock.Anything).Return(sampleOrders())

	out := usecase.NewReportUsecase(orderRepo).Summary(context.Background())
	assert.Equal(t, 4, out.Count)
	assert.Len(t, out.ByStatus, 4)
}
