package cbr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Dan9191/installment-service/internal/config"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

const (
	// lookbackDays is the rate history window requested from CBR
	lookbackDays = 30
	soapNS       = "http://www.w3.org/2003/05/soap-envelope"
	cbrNS        = "http://web.cbr.ru/"
)

// KeyRate is one published key rate and the date it took effect
type KeyRate struct {
	Rate float64
	Date time.Time
}

// CBRClient fetches the Central Bank of Russia key rate used to accrue late fees. The rate is
// fetched at most once per calendar day.
type CBRClient struct {
	url    string
	margin float64
	client *http.Client
	log    *logrus.Logger
	now    func() time.Time

	mu        sync.Mutex
	cached    KeyRate
	fetchedOn string
}

// NewCBRClient initializes a new CBR client
func NewCBRClient(cfg *config.Config, log *logrus.Logger) *CBRClient {
	return &CBRClient{
		url:    cfg.CBRURL,
		margin: cfg.LateFeeMargin,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
		now: time.Now,
	}
}

// keyRateEnvelope builds the SOAP 1.2 KeyRate request for the lookback window ending today
func keyRateEnvelope(today time.Time) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	env := doc.CreateElement("soap12:Envelope")
	env.CreateAttr("xmlns:soap12", soapNS)
	call := env.CreateElement("soap12:Body").CreateElement("KeyRate")
	call.CreateAttr("xmlns", cbrNS)
	call.CreateElement("fromDate").SetText(today.AddDate(0, 0, -lookbackDays).Format("2006-01-02"))
	call.CreateElement("ToDate").SetText(today.Format("2006-01-02"))

	return doc.WriteToBytes()
}

func (c *CBRClient) post(ctx context.Context, envelope []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(envelope))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", cbrNS+"KeyRate")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// parseKeyRates reads every KR row of a KeyRate response. Rows without a parseable rate or date
// are skipped.
func parseKeyRates(raw []byte) ([]KeyRate, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	var rates []KeyRate
	for _, kr := range doc.FindElements("//KeyRate/KR") {
		rateEl, dateEl := kr.SelectElement("Rate"), kr.SelectElement("DT")
		if rateEl == nil || dateEl == nil {
			continue
		}
		// CBR may use a decimal comma
		rate, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(rateEl.Text()), ",", "."), 64)
		if err != nil {
			continue
		}
		date, err := parseRateDate(dateEl.Text())
		if err != nil {
			continue
		}
		rates = append(rates, KeyRate{Rate: rate, Date: date})
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("no key rate data found in XML")
	}
	return rates, nil
}

func parseRateDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// LatestKeyRate returns the most recent rate in effect today. Rates announced for a future date
// are ignored.
func (c *CBRClient) LatestKeyRate(ctx context.Context) (KeyRate, error) {
	now := c.now()
	today := now.Format("2006-01-02")

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fetchedOn == today {
		return c.cached, nil
	}

	envelope, err := keyRateEnvelope(now)
	if err != nil {
		return KeyRate{}, fmt.Errorf("failed to build request: %w", err)
	}
	body, err := c.post(ctx, envelope)
	if err != nil {
		return KeyRate{}, err
	}
	rates, err := parseKeyRates(body)
	if err != nil {
		return KeyRate{}, err
	}

	var latest KeyRate
	found := false
	for _, r := range rates {
		if r.Date.After(now) {
			continue
		}
		if !found || r.Date.After(latest.Date) {
			latest, found = r, true
		}
	}
	if !found {
		return KeyRate{}, fmt.Errorf("no key rate in effect on %s", today)
	}

	c.cached, c.fetchedOn = latest, today
	c.log.Infof("Key rate %.2f%% in effect since %s", latest.Rate, latest.Date.Format("2006-01-02"))
	return latest, nil
}

// GetKeyRate returns the annual late-fee rate in percent: today's key rate plus the margin
func (c *CBRClient) GetKeyRate() (float64, error) {
	kr, err := c.LatestKeyRate(context.Background())
	if err != nil {
		return 0, err
	}
	return kr.Rate + c.margin, nil
}
