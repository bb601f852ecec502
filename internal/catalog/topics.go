package catalog

const (
	TopicFormSubmission = "catalog.form.submission"
)

// Partition key = correlation id, supaya event satu submission tetap berurutan.
func PartitionKey(correlationID string) []byte { return []byte(correlationID) }
