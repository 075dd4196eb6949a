package mcpsrv

import (
	"context"
	"time"

	"github.com/qyinm/ballottui/types"
	"go.uber.org/zap"
)

// StartCacheClearer drops the source's cached feed every interval until ctx
// is done. It returns false without starting anything when the interval is
// not positive or the source keeps no cache.
func StartCacheClearer(ctx context.Context, source types.CandidateSource, interval time.Duration, log *zap.Logger) bool {
	clearable, ok := source.(cacheClearSource)
	if interval <= 0 || !ok {
		return false
	}
	if log == nil {
		log = zap.NewNop()
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				clearable.ClearCache()
				log.Debug("scheduled cache clear")
			case <-ctx.Done():
				return
			}
		}
	}()
	return true
}
