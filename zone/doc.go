/*
Package zone synthesizes the zeronsd zone from overlay network members and hosts-file
entries and maintains its serial.

MemberRecords and HostsRecords are pure builders which turn their inputs into A and AAAA
RRs under the zone domain. State is the ordered record set and serial; every Upsert or
Remove is one mutation and advances the serial by exactly one. Authority ties these
together: Configure builds every record of a pass before touching anything, applies them
to a private copy of the State and then publishes an immutable Snapshot. Readers only ever
see Snapshots so they never observe a partially applied pass.

Member naming follows the ZeroTier convention:

    zt-<node id>.<domain>   A and AAAA for every assigned address
    <name>.<domain>         A for every assigned IPv4 address (AAAA with AliasIPv6)
*/
package zone
