/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension owns one configuration entity, stored under the
"_c:<package>" key. It is loaded from the "conf" section of the genesis
file:

	{
	  "conf": {
	    "token": {"account_deposit": 2},
	    "offer": {"entry_deposit": 3}
	  }
	}

and read by the extension handlers with Load.
*/
package gconf
