// Package ingestion loads customer feedback data and produces embeddings.
//
// LoadRecords parses the survey CSV into validated FeedbackRecords with
// populated profile summaries. The Producer then embeds the records in
// fixed-size chunks, pacing calls to the embedding service and dropping
// (with logging) any chunk whose embedding call fails. A chunk failure never
// blocks the remaining chunks; ingestion is deliberately best-effort.
package ingestion
