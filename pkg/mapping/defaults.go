package mapping

// defaultTable lists the problematic characters uneff ships with. Order
// matters: cleaning scans entries in table order, and new mapping files are
// written with rows in this order.
var defaultTable = []Entry{
	{Char: '\ufffd', Name: "Replacement Character", Remove: true},
	{Char: '\u0000', Name: "NULL", Remove: true},
	{Char: '\u001a', Name: "Substitute", Remove: true},
	{Char: '\u001c', Name: "File Separator", Remove: true},
	{Char: '\u001d', Name: "Group Separator", Remove: true},
	{Char: '\u001e', Name: "Record Separator", Remove: true},
	{Char: '\u001f', Name: "Unit Separator", Remove: true},
	{Char: '\u2028', Name: "Line Separator", Remove: true},
	{Char: '\u2029', Name: "Paragraph Separator", Remove: true},
	{Char: '\u200b', Name: "Zero Width Space", Remove: true},
	{Char: '\u200c', Name: "Zero Width Non-Joiner", Remove: true},
	{Char: '\u200d', Name: "Zero Width Joiner", Remove: true},
	{Char: '\u200e', Name: "Left-to-Right Mark", Remove: true},
	{Char: '\u200f', Name: "Right-to-Left Mark", Remove: true},
	{Char: '\u202a', Name: "Left-to-Right Embedding", Remove: true},
	{Char: '\u202b', Name: "Right-to-Left Embedding", Remove: true},
	{Char: '\u202c', Name: "Pop Directional Formatting", Remove: true},
	{Char: '\u202d', Name: "Left-to-Right Override", Remove: true},
	{Char: '\u202e', Name: "Right-to-Left Override", Remove: true},
	{Char: '\u2061', Name: "Function Application", Remove: true},
	{Char: '\u2062', Name: "Invisible Times", Remove: true},
	{Char: '\u2063', Name: "Invisible Separator", Remove: true},
	{Char: '\u2064', Name: "Invisible Plus", Remove: true},
	{Char: '\u2066', Name: "Left-to-Right Isolate", Remove: true},
	{Char: '\u2067', Name: "Right-to-Left Isolate", Remove: true},
	{Char: '\u2068', Name: "First Strong Isolate", Remove: true},
	{Char: '\u2069', Name: "Pop Directional Isolate", Remove: true},
	{Char: '\ufeff', Name: "BOM (in middle of file)", Remove: true},
}

// Defaults returns a copy of the built-in character table.
func Defaults() Set {
	set := make(Set, len(defaultTable))
	copy(set, defaultTable)
	return set
}

// Fallback returns the minimal two-entry set used when a mappings file cannot
// be read. It is also the table written when a missing file is created
// quietly.
func Fallback() Set {
	return Set{
		{Char: '\ufffd', Name: "Replacement Character", Remove: true},
		{Char: '\ufeff', Name: "BOM (in middle of file)", Remove: true},
	}
}
