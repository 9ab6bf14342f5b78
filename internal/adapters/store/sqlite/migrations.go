package sqlite

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	username   TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	color       TEXT NOT NULL DEFAULT '#007bff',
	owner_id    TEXT NOT NULL,
	is_active   INTEGER NOT NULL DEFAULT 1,
	created_at  DATETIME NOT NULL,
	updated_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS project_members (
	project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	user_id    TEXT NOT NULL,
	role       TEXT NOT NULL,
	joined_at  DATETIME NOT NULL,
	PRIMARY KEY (project_id, user_id)
);

CREATE TABLE IF NOT EXISTS boards (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	created_by  TEXT NOT NULL,
	columns     TEXT NOT NULL DEFAULT '[]',
	is_active   INTEGER NOT NULL DEFAULT 1,
	created_at  DATETIME NOT NULL,
	updated_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	priority    TEXT NOT NULL,
	due_date    DATETIME,
	assigned_to TEXT,
	board_id    TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
	project_id  TEXT NOT NULL,
	created_by  TEXT NOT NULL,
	position    INTEGER NOT NULL DEFAULT 0,
	labels      TEXT NOT NULL DEFAULT '[]',
	attachments TEXT NOT NULL DEFAULT '[]',
	created_at  DATETIME NOT NULL,
	updated_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS activity_log (
	id           TEXT PRIMARY KEY,
	task_id      TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	action       TEXT NOT NULL,
	performed_by TEXT NOT NULL,
	timestamp    DATETIME NOT NULL,
	details      TEXT NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS comments (
	id         TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	task_id    TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	author_id  TEXT NOT NULL,
	parent_id  TEXT REFERENCES comments(id) ON DELETE CASCADE,
	is_edited  INTEGER NOT NULL DEFAULT 0,
	edited_at  DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_project_members_user ON project_members(user_id);
CREATE INDEX IF NOT EXISTS idx_boards_project ON boards(project_id);
CREATE INDEX IF NOT EXISTS idx_tasks_board_status ON tasks(board_id, status, position);
CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
CREATE INDEX IF NOT EXISTS idx_activity_task ON activity_log(task_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_comments_task ON comments(task_id);
CREATE INDEX IF NOT EXISTS idx_comments_parent ON comments(parent_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
