package selftest

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/gold-appraisal/internal/app"
	"github.com/jsamuelsen11/gold-appraisal/internal/domain/gold"
	"github.com/jsamuelsen11/gold-appraisal/internal/platform/config"
	"github.com/jsamuelsen11/gold-appraisal/internal/platform/logging"
	"github.com/jsamuelsen11/gold-appraisal/internal/ports"
)

// mockAppraiser is a testify mock of ports.Appraiser.
type mockAppraiser struct {
	mock.Mock
}

func (m *mockAppraiser) Appraise(ctx context.Context, req ports.AppraisalRequest) (*ports.Appraisal, error) {
	args := m.Called(ctx, req)
	a, _ := args.Get(0).(*ports.Appraisal)
	return a, args.Error(1)
}

func fixedID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.MustParse("01928f6e-7c1a-7b3e-9d2f-123456789abc")
}

func newTestRunner(t *testing.T, logger *slog.Logger) *Runner {
	t.Helper()
	r := NewRunner(nil, logger)
	id := fixedID(t)
	r.newID = func() (uuid.UUID, error) { return id, nil }
	return r
}

func passing(name string) Case {
	return Case{Name: name, Run: func(context.Context) error { return nil }}
}

func failing(name string, err error) Case {
	return Case{Name: name, Run: func(context.Context) error { return err }}
}

func TestRun_CountsResultsInOrder(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, nil)
	report := r.Run(context.Background(), []Case{
		passing("a"),
		failing("b", errors.New("boom")),
		passing("c"),
	})

	assert.Equal(t, fixedID(t).String(), report.RunID)
	assert.Equal(t, 2, report.Passed)
	assert.Equal(t, 1, report.Failed)
	assert.False(t, report.OK())
	require.Len(t, report.Results, 3)
	assert.Equal(t, []string{"a", "b", "c"},
		[]string{report.Results[0].Name, report.Results[1].Name, report.Results[2].Name})
	assert.Equal(t, "boom", report.Results[1].Error)
}

func TestRun_RecoversPanics(t *testing.T) {
	t.Parallel()

	r := newTestRunner(t, nil)
	report := r.Run(context.Background(), []Case{
		{Name: "must purity on empty", Run: func(context.Context) error {
			gold.New().MustPurity()
			return nil
		}},
		passing("after panic"),
	})

	require.Len(t, report.Results, 2)
	assert.False(t, report.Results[0].Passed)
	assert.Contains(t, report.Results[0].Error, "panic:")
	assert.Contains(t, report.Results[0].Error, "purity undefined")
	assert.True(t, report.Results[1].Passed)
}

func TestRun_CanceledContextSkipsCases(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	r := newTestRunner(t, nil)
	report := r.Run(ctx, []Case{{Name: "never", Run: func(context.Context) error {
		called = true
		return nil
	}}})

	assert.False(t, called)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, context.Canceled.Error(), report.Results[0].Error)
}

func TestRun_LogsRunID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := newTestRunner(t, logging.New("debug", "json", &buf))

	var fromCtx *slog.Logger
	r.Run(context.Background(), []Case{{Name: "ctx logger", Run: func(ctx context.Context) error {
		fromCtx = logging.FromContext(ctx)
		return nil
	}}})

	out := buf.String()
	assert.Contains(t, out, `"run_id":"`+fixedID(t).String()+`"`)
	assert.Contains(t, out, `"msg":"self-test finished"`)
	assert.NotSame(t, slog.Default(), fromCtx, "cases should see the run logger in ctx")
}

func TestExamples_AllPassWithAppraisalService(t *testing.T) {
	t.Parallel()

	svc := app.NewAppraisalService(config.AppraisalConfig{PerGram: 2000, IncludeMarkup: true}, nil, nil)
	report := NewRunner(nil, nil).Run(context.Background(), Examples(svc))

	for _, res := range report.Results {
		assert.True(t, res.Passed, "%s: %s", res.Name, res.Error)
	}
	assert.True(t, report.OK())
	assert.NotEqual(t, uuid.Nil.String(), report.RunID)
}

func TestExamples_AppraiserFailureIsReported(t *testing.T) {
	t.Parallel()

	appraiser := &mockAppraiser{}
	appraiser.On("Appraise", mock.Anything, mock.Anything).Return(nil, errors.New("appraiser down"))

	report := newTestRunner(t, nil).Run(context.Background(), Examples(appraiser))

	assert.Equal(t, 2, report.Failed)
	for _, res := range report.Results {
		if strings.HasPrefix(res.Name, "appraiser") {
			assert.Equal(t, "appraiser down", res.Error)
		}
	}
	appraiser.AssertNumberOfCalls(t, "Appraise", 2)
}

func TestExamples_AppraiserWrongPurityFails(t *testing.T) {
	t.Parallel()

	appraiser := &mockAppraiser{}
	appraiser.On("Appraise", mock.Anything, mock.MatchedBy(func(req ports.AppraisalRequest) bool {
		return req.Piece.Name() == "Ring"
	})).Return(&ports.Appraisal{Piece: "Ring", Purity: 0.5, PurityDefined: true}, nil)
	appraiser.On("Appraise", mock.Anything, mock.Anything).Return(&ports.Appraisal{Piece: "Gold"}, nil)

	report := newTestRunner(t, nil).Run(context.Background(), Examples(appraiser))

	assert.Equal(t, 1, report.Failed)
	for _, res := range report.Results {
		if res.Name == "appraiser reports ring" {
			assert.Contains(t, res.Error, "purity = 0.5, want 0.6667")
		}
	}
	appraiser.AssertExpectations(t)
}

func TestReport_WriteText(t *testing.T) {
	t.Parallel()

	report := newTestRunner(t, nil).Run(context.Background(), []Case{
		passing("a"),
		failing("b", errors.New("boom")),
	})

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, FormatText))

	want := "ok   a\n" +
		"FAIL b: boom\n" +
		"FAIL run=" + fixedID(t).String() + " passed=1 failed=1\n"
	assert.Equal(t, want, buf.String())
}

func TestReport_WriteJSON(t *testing.T) {
	t.Parallel()

	report := newTestRunner(t, nil).Run(context.Background(), []Case{
		passing("a"),
		failing("b", errors.New("boom")),
	})

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, FormatJSON))

	var decoded Report
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, report.RunID, decoded.RunID)
	assert.Equal(t, 1, decoded.Passed)
	assert.Equal(t, 1, decoded.Failed)
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "boom", decoded.Results[1].Error)
	assert.NotContains(t, buf.String(), `"error": ""`, "passing case should omit error")
}

func TestReport_WriteUnknownFormat(t *testing.T) {
	t.Parallel()

	report := &Report{}
	assert.Error(t, report.Write(&bytes.Buffer{}, "xml"))
}
