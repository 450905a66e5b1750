/*
Package registry contains implementation of the Asset Registry contract
deployed in a Neo network.

Asset Registry tracks ownership of digital assets. An asset is registered by
its creator who becomes its first owner. Each asset gets a sequential numeric
ID starting from 0, carries a free-form name, description and URI that the
current owner can change, and an immutable content hash supplied at
registration. Assets registered as transferable can be handed over to another
account by the current owner, non-transferable ones stay with their owner
forever. The owner can also grant and revoke access to particular accounts.
Creator and current owner always have access. Explicit grants are kept across
transfers until the new owner revokes them.

All state-changing methods check witness of the corresponding account (creator
for registration, current owner for everything else).

# Contract notifications

AssetRegistered notification. It is emitted on every successful registration.

	AssetRegistered:
	  - name: assetId
	    type: Integer
	  - name: creator
	    type: Hash160
	  - name: contentHash
	    type: ByteArray

AssetTransferred notification. It is emitted on every successful transfer
including transfers to the same owner.

	AssetTransferred:
	  - name: assetId
	    type: Integer
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160

AssetMetadataUpdated notification. It is emitted when the owner rewrites
asset's name, description and URI.

	AssetMetadataUpdated:
	  - name: assetId
	    type: Integer
	  - name: name
	    type: String
	  - name: description
	    type: String
	  - name: assetURI
	    type: String

UserAuthorized and UserDeauthorized notifications. They are emitted on every
access grant and revocation, even if the access set has not changed.

	UserAuthorized:
	  - name: assetId
	    type: Integer
	  - name: user
	    type: Hash160
	UserDeauthorized:
	  - name: assetId
	    type: Integer
	  - name: user
	    type: Hash160
*/
package registry
