package pubsub

// PubSubClient publishes msgpack-encoded events and decodes them on delivery.
type PubSubClient interface {
	SendMessage(topic EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
	Close() error
}
