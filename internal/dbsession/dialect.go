package dbsession

import "strings"

// Dialect holds the catalog queries of one database flavour. Every query
// takes its arguments as bind parameters: ListObjects (kind),
// CountMatching (kind, name), GetDDL (kind, name).
type Dialect struct {
	Name          string
	Driver        string
	ListObjects   string
	CountMatching string
	GetDDL        string
	// NotFound reports whether a GetDDL error means the object is missing.
	NotFound func(error) bool
}

// Oracle reads USER_OBJECTS and calls DBMS_METADATA.GET_DDL.
var Oracle = Dialect{
	Name:          "oracle",
	Driver:        "oracle",
	ListObjects:   `SELECT object_name FROM user_objects WHERE object_type = :1 ORDER BY object_name`,
	CountMatching: `SELECT COUNT(*) FROM user_objects WHERE object_type = :1 AND object_name = :2`,
	GetDDL:        `SELECT DBMS_METADATA.GET_DDL(:1, :2) FROM dual`,
	NotFound: func(err error) bool {
		// ORA-31603: object "X" of type Y not found in schema "Z"
		return strings.Contains(err.Error(), "ORA-31603")
	},
}

// SQLite reads a local catalog file holding a user_objects table with
// object_type, object_name and ddl columns, e.g. an offline export of a
// schema. A missing object yields no row, so NotFound is unset.
var SQLite = Dialect{
	Name:          "sqlite",
	Driver:        "sqlite",
	ListObjects:   `SELECT object_name FROM user_objects WHERE object_type = ? ORDER BY object_name`,
	CountMatching: `SELECT COUNT(*) FROM user_objects WHERE object_type = ? AND object_name = ?`,
	GetDDL:        `SELECT ddl FROM user_objects WHERE object_type = ? AND object_name = ?`,
}
