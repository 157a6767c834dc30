package cbr

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Dan9191/installment-service/internal/config"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rows are listed out of order and include a rate announced for a later date
const keyRateResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
  <soap:Body>
    <KeyRateResponse xmlns="http://web.cbr.ru/">
      <KeyRateResult>
        <diffgram>
          <KeyRate xmlns="">
            <KR><DT>2025-02-14T00:00:00+03:00</DT><Rate>20.50</Rate></KR>
            <KR><DT>2025-03-21T00:00:00+03:00</DT><Rate>19.00</Rate></KR>
            <KR><DT>2025-03-07T00:00:00+03:00</DT><Rate>21,00</Rate></KR>
            <KR><DT>broken</DT><Rate>99</Rate></KR>
          </KeyRate>
        </diffgram>
      </KeyRateResult>
    </KeyRateResponse>
  </soap:Body>
</soap:Envelope>`

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func newTestClient(t *testing.T, handler http.HandlerFunc) (*CBRClient, *testClock) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)
	clock := &testClock{t: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	c := NewCBRClient(&config.Config{CBRURL: srv.URL, LateFeeMargin: 5}, log)
	c.now = clock.now
	return c, clock
}

func TestGetKeyRate(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "http://web.cbr.ru/KeyRate", r.Header.Get("SOAPAction"))

		body, _ := io.ReadAll(r.Body)
		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromBytes(body))
		from := doc.FindElement("//KeyRate/fromDate")
		to := doc.FindElement("//KeyRate/ToDate")
		require.NotNil(t, from)
		require.NotNil(t, to)
		assert.Equal(t, "2025-02-08", from.Text())
		assert.Equal(t, "2025-03-10", to.Text())

		_, _ = w.Write([]byte(keyRateResponse))
	})

	rate, err := c.GetKeyRate()
	require.NoError(t, err)
	assert.InDelta(t, 26.0, rate, 1e-9)
}

func TestLatestKeyRate_PicksNewestInEffect(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(keyRateResponse))
	})

	kr, err := c.LatestKeyRate(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 21.0, kr.Rate, 1e-9)
	assert.Equal(t, "2025-03-07", kr.Date.Format("2006-01-02"))
}

func TestLatestKeyRate_CachedPerDay(t *testing.T) {
	var calls int32
	c, clock := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(keyRateResponse))
	})

	_, err := c.GetKeyRate()
	require.NoError(t, err)
	clock.t = clock.t.Add(6 * time.Hour)
	_, err = c.GetKeyRate()
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	clock.t = clock.t.Add(24 * time.Hour)
	_, err = c.GetKeyRate()
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetKeyRate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, ""},
		{"not xml", http.StatusOK, "rate limited"},
		{"no rates", http.StatusOK, `<diffgram><KeyRate></KeyRate></diffgram>`},
		{"missing rate", http.StatusOK, `<diffgram><KeyRate><KR><DT>2025-03-07</DT></KR></KeyRate></diffgram>`},
		{"only future rates", http.StatusOK, `<diffgram><KeyRate><KR><DT>2025-04-01</DT><Rate>18</Rate></KR></KeyRate></diffgram>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.GetKeyRate()
			assert.Error(t, err)
			assert.Empty(t, c.fetchedOn)
		})
	}
}
