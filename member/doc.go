/*
Package member supplies overlay network membership to the zone builder. Every source
implements Source and returns the members to publish. Sources do their own I/O and honour
the context deadline; nothing here knows about DNS beyond producing zone.Member values.

Central talks to the ZeroTier Central REST API, File reads a YAML list of members and
Static returns a fixed list.
*/
package member
