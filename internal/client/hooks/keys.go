// Package hooks binds the resource services to the query cache: each read
// has a cache key and each mutation names the keys it makes stale.
package hooks

import "github.com/dmitrijs2005/meggy/internal/client/query"

func AgentsKey() query.Key {
	return query.Key{"agents"}
}

// AgentKey sits one level below "detail" so no agent id can take the place
// of DefaultAgentKey.
func AgentKey(id string) query.Key {
	return query.Key{"agents", "detail", id}
}

func DefaultAgentKey() query.Key {
	return query.Key{"agents", "default"}
}

func ConversationsKey() query.Key {
	return query.Key{"conversations"}
}

func ConversationKey(id string) query.Key {
	return query.Key{"conversations", id}
}

func MessagesKey(conversationID string) query.Key {
	return query.Key{"messages", conversationID}
}
