/*
Package database is the lookup structure behind every zone snapshot. RRs are stored in a
tree keyed by class then by label, right to left, so a lookup walks the query name one
label at a time and can tell the difference between an empty answer (NoData) and a name
which does not exist at all (NXDOMAIN).

A Database is populated once and then only read. There is no internal locking so it must
not be modified after it has been published to concurrent readers.

    db := database.NewDatabase()
    for _, rr := range rrs {
        db.AddRR(rr)
    }
    rrset, nxDomain := db.LookupRR(dns.ClassINET, dns.TypeA, qName)
*/
package database
