/*
zeronsd is an authoritative name server for a ZeroTier overlay network. It periodically
fetches network membership from ZeroTier Central (or a YAML members file), merges it with
a local hosts file and serves the resulting zone.

Every authorized member with node ID 8056c2e21c and name "laptop" is published as:

	zt-8056c2e21c.<domain>  A and AAAA for every assigned address
	laptop.<domain>         A for every assigned IPv4 address

Names from the hosts file are published under the same domain. The zone serial advances
by one for every record written during a sync pass.

A typical invocation is:

	# ZEROTIER_CENTRAL_TOKEN=... zeronsd --network 8056c2e21c000001 --domain zt.example

Run "zeronsd -h" for the complete list of options.
*/
package main
