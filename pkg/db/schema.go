package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Bookmarks: one row per saved content item
CREATE TABLE IF NOT EXISTS bookmarks (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    content_type TEXT NOT NULL,
    title TEXT NOT NULL,
    content TEXT NOT NULL DEFAULT '',
    url TEXT,
    image_url TEXT,

    -- JSON arrays of strings
    tags TEXT NOT NULL DEFAULT '[]',
    ai_tags TEXT NOT NULL DEFAULT '[]',

    -- JSON object: {"domain": ..., "sourceUrl": ..., "kind": ..., "details": {...}}
    metadata TEXT NOT NULL DEFAULT '{}',

    -- Unix nanoseconds
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bookmarks_user_created ON bookmarks(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_bookmarks_user_type ON bookmarks(user_id, content_type);
CREATE INDEX IF NOT EXISTS idx_bookmarks_url ON bookmarks(url);
`
