// Package sessions provides server-side session storage for OAuth token records.
//
// A browser session is identified by an opaque ID carried in a signed cookie
// (see [CookieCodec]) and maps to at most one [TokenRecord] at a time. The
// [Store] interface abstracts the backing storage; [MemoryStore] keeps records
// in-process while [SQLiteStore] persists them across restarts.
//
// Stores are safe for concurrent use. Concurrent refreshes of the same session
// are not serialized: the last write wins, which is harmless because every
// written record came from the provider's token endpoint.
package sessions
