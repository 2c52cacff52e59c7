package zebra

import (
	"context"
	"errors"
	"time"

	"github.com/iwtcode/zplAdapter/status"
)

// ErrInvalidInterval возвращается в единственном результате опроса,
// если интервал не положительный.
var ErrInvalidInterval = errors.New("polling interval must be positive")

// PollingResult содержит состояние принтера или ошибку от одной попытки опроса.
type PollingResult struct {
	Time   time.Time
	Status *status.PrinterStatus
	Err    error
}

// StartPolling запускает фоновый процесс, который периодически запрашивает ~HQES.
// Запросы выполняются строго по очереди: принтер обслуживает одно соединение
// за раз, поэтому тик, пришедший во время запроса, пропускается.
// Опрос прекращается при отмене предоставленного контекста, канал закрывается.
func (c *Client) StartPolling(ctx context.Context, interval time.Duration) <-chan PollingResult {
	if interval <= 0 {
		resultsChan := make(chan PollingResult, 1)
		resultsChan <- PollingResult{Time: time.Now(), Err: ErrInvalidInterval}
		close(resultsChan)
		return resultsChan
	}

	resultsChan := make(chan PollingResult)

	go func() {
		defer close(resultsChan)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				c.logger.Debug("Опрос остановлен из-за отмены контекста.")
				return
			case <-ticker.C:
				st, err := c.GetStatus()
				result := PollingResult{Time: time.Now(), Status: st, Err: err}
				select {
				case resultsChan <- result:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return resultsChan
}
