package health

import (
	"context"
	"fmt"
	"time"
)

// MakeIsHealthy returns a function checking the given host resolves.
func MakeIsHealthy(resolver LookupIPer, host string, logger Logger) func() error {
	return func() (err error) {
		err = isHealthy(resolver, host)
		if err != nil {
			logger.Warn("unhealthy: " + err.Error())
		}
		return err
	}
}

func isHealthy(resolver LookupIPer, host string) (err error) {
	const timeout = 3 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, err = resolver.LookupIP(ctx, host)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", host, err)
	}
	return nil
}
