/*
Package hosts reads the conventional hosts-file format into a Table which maps each
address to the fully qualified names it carries, in the order they were first seen.

    # comment
    127.0.0.1   localhost
    ::1         localhost ip6-localhost
    127.0.1.1   islay.localdomain islay   # trailing comment

Relative names are rooted under the zone domain supplied by the caller so "localhost"
read with a domain of "zombocom." becomes "localhost.zombocom.". Names ending in a dot are
taken as already absolute.

Parsing is all-or-nothing: the first bad line stops the parse and is reported as a
*ParseError. Nothing in this package modifies global state.
*/
package hosts
