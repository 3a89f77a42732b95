// Package analysis composes retrieval-augmented prompts and drives analyst
// queries.
//
// The Pipeline type answers a single query: it fans the query out into a
// passthrough branch and a top-k similarity lookup, merges both into one
// prompt body, and forwards the prompt to the analyst chat model. Retrieval
// failure and empty retrieval degrade the prompt rather than aborting the
// query; only an analyst failure reaches the caller.
//
// The Runner type feeds batches of queries through a pipeline over a worker
// pool, pacing submissions to respect chat-service rate limits.
package analysis
