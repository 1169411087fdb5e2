package permit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	seqs map[string]int64
}

func (f *fakeCounter) Next(_ context.Context, key string) (int64, error) {
	if f.seqs == nil {
		f.seqs = make(map[string]int64)
	}
	f.seqs[key]++
	return f.seqs[key], nil
}

func testFactory() *PermitFactory {
	f := NewPermitFactory(&fakeCounter{})
	f.Now = func() time.Time {
		return time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	}
	return f
}

func testRoster() []Approver {
	return []Approver{
		{Name: "Lee", Email: "lee@x.com", Role: "work supervisor"},
		{Name: "Park", Email: "park@x.com", Role: "safety manager"},
	}
}

func TestNewPermitIDFormat(t *testing.T) {
	tests := []struct {
		permitType PermitType
		wantID     string
	}{
		{PermitTypeGeneral, "GP-20260831-001"},
		{PermitTypeFire, "FW-20260831-001"},
		{PermitTypeSupplementary, "SP-20260831-001"},
	}

	for _, tt := range tests {
		t.Run(string(tt.permitType), func(t *testing.T) {
			f := testFactory()
			p, err := f.NewPermit(context.Background(), tt.permitType, "Hot work near tank 4",
				Requester{Name: "Kim", Department: "Maintenance", Email: "kim@x.com"},
				testRoster(), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, p.ID)
		})
	}
}

func TestNewPermitSequencesWithinDay(t *testing.T) {
	f := testFactory()
	req := Requester{Name: "Kim", Department: "Maintenance", Email: "kim@x.com"}

	for i := 1; i <= 3; i++ {
		p, err := f.NewPermit(context.Background(), PermitTypeGeneral, "Job", req, testRoster(), nil)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("GP-20260831-%03d", i), p.ID)
	}

	// fire permits draw from their own sequence
	p, err := f.NewPermit(context.Background(), PermitTypeFire, "Welding", req, testRoster(), nil)
	require.NoError(t, err)
	assert.Equal(t, "FW-20260831-001", p.ID)
}

func TestNewPermitInitialState(t *testing.T) {
	f := testFactory()
	data := map[string]interface{}{"gas_measured": true, "o2_pct": 20.9}

	p, err := f.NewPermit(context.Background(), PermitTypeGeneral, "Confined space entry",
		Requester{Name: "Kim", Department: "Maintenance", Email: "kim@x.com"},
		testRoster(), data)
	require.NoError(t, err)

	assert.Equal(t, PermitStatusPending, p.Status)
	assert.Equal(t, 0, p.CurrentApproverIndex)
	assert.Equal(t, int64(1), p.Version)
	assert.Len(t, p.Approvers, 2)
	for _, a := range p.Approvers {
		assert.Equal(t, ApproverStatusPending, a.Status)
	}
	// opaque payload passes through untouched
	assert.Equal(t, data, p.Data)
}

func TestNewPermitValidation(t *testing.T) {
	f := testFactory()
	goodReq := Requester{Name: "Kim", Department: "Maintenance", Email: "kim@x.com"}

	tests := []struct {
		name       string
		permitType PermitType
		title      string
		requester  Requester
		roster     []Approver
		wantErr    error
	}{
		{"empty title", PermitTypeGeneral, "  ", goodReq, testRoster(), ErrValidation},
		{"unknown type", PermitType("nuclear"), "Job", goodReq, testRoster(), ErrValidation},
		{"missing requester name", PermitTypeGeneral, "Job", Requester{Department: "Ops"}, testRoster(), ErrValidation},
		{"missing department", PermitTypeGeneral, "Job", Requester{Name: "Kim"}, testRoster(), ErrValidation},
		{"empty roster", PermitTypeGeneral, "Job", goodReq, nil, ErrInvalidRoster},
		{"approver without email", PermitTypeGeneral, "Job", goodReq, []Approver{{Name: "Lee"}}, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.NewPermit(context.Background(), tt.permitType, tt.title, tt.requester, tt.roster, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
