// Package resilience groups the fault tolerance helpers used around
// outbound calls: circuit breakers for the LLM providers and chat webhooks,
// and retry with exponential backoff and jitter.
//
//	cb := circuitbreaker.New(circuitbreaker.OpenAIAPIConfig())
//	err := retry.WithBackoff(ctx, retry.AIAPIConfig(), func() error {
//	    _, err := cb.Execute(func() (interface{}, error) {
//	        return callProvider(ctx)
//	    })
//	    return err
//	})
package resilience
