/*
Package storagemodels defines the backend-neutral request shapes shared by
every DataStore implementation: partition listing parameters and the reserved
attribute names adapters inject alongside entity payloads.

Keeping these types free of AWS SDK imports lets the local backend and test
doubles consume the identical contract as the DynamoDB backend.
*/
package storagemodels
