package kvstore

// Store is an opaque keyed-document store. Values are serialized with
// MessagePack; callers pass a pointer to decode into on Load.
type Store interface {
	Load(key string, out any) (bool, error)
	Save(key string, value any) error
	Remove(key string) error
}
