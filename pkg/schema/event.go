package schema

const ProductEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "showcase",
	"name": "product_event",
	"fields": [
		{"name": "event_type", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "user_id", "type": "string"},
		{"name": "votes", "type": "long"},
		{"name": "at", "type": "long"}
	]
}`

type ProductEventV1 struct {
	EventType string `avro:"event_type"`
	ProductID string `avro:"product_id"`
	UserID    string `avro:"user_id"`
	Votes     int64  `avro:"votes"`
	At        int64  `avro:"at"`
}
