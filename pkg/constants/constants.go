// pkg/constants/constants.go
package constants

//============== ROLES ==============

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

//============== ASSET STATUSES ==============

const (
	StatusActive       = "Active"
	StatusUnderRepair  = "Under Repair"
	StatusToBeDisposed = "To be Disposed"
	StatusDisposed     = "Disposed"
)

// AssetStatuses - допустимые значения колонки Status.
var AssetStatuses = []string{StatusActive, StatusUnderRepair, StatusToBeDisposed, StatusDisposed}

//============== WORKSHEETS ==============

const (
	SheetAssets        = "Assets"
	SheetRefCategories = "Ref_Categories"
	SheetRefTypes      = "Ref_Types"
	SheetRefCompanies  = "Ref_Companies"
	SheetRefOwners     = "Ref_Owners"
	SheetRefLocation   = "Ref_Location"
	SheetLogStatus     = "Log_Status"
	SheetLogRelocation = "Log_Relocation"
	SheetLogDisposal   = "Log_Disposal"
)

//============== ASSET COLUMNS ==============

const (
	ColID                = "ID"
	ColItemName          = "Item Name"
	ColCategory          = "Category"
	ColType              = "Type"
	ColManufacture       = "Manufacture"
	ColModel             = "Model"
	ColSerialNumber      = "Serial Number"
	ColAssetTag          = "Asset Tag"
	ColCompany           = "Company"
	ColBisnisUnit        = "Bisnis Unit"
	ColLocation          = "Location"
	ColRoomLocation      = "Room Location"
	ColNotes             = "Notes"
	ColCondition         = "Condition"
	ColPurchaseDate      = "Purchase Date"
	ColPurchaseCost      = "Purchase Cost"
	ColWarranty          = "Warranty"
	ColSupplier          = "Supplier"
	ColJournal           = "Journal"
	ColOwner             = "Owner"
	ColCodeCategory      = "Code Category"
	ColCodeCompany       = "Code Company"
	ColCodeType          = "Code Type"
	ColCodeOwner         = "Code Owner"
	ColTahun             = "Tahun"
	ColResidualPercent   = "Residual Percent"
	ColUsefulLife        = "Useful Life"
	ColResidualValue     = "Residual Value"
	ColDepreciationValue = "Depreciation Value"
	ColBookValue         = "Book Value"
	ColStatus            = "Status"
)

// AssetHeader - порядок колонок для нового листа Assets.
var AssetHeader = []string{
	ColID, ColItemName, ColCategory, ColType, ColManufacture, ColModel, ColSerialNumber,
	ColAssetTag, ColCompany, ColBisnisUnit, ColLocation, ColRoomLocation, ColNotes,
	ColCondition, ColPurchaseDate, ColPurchaseCost, ColWarranty, ColSupplier, ColJournal,
	ColOwner, ColCodeCategory, ColCodeCompany, ColCodeType, ColCodeOwner, ColTahun,
	ColResidualPercent, ColUsefulLife, ColResidualValue, ColDepreciationValue, ColBookValue,
	ColStatus,
}

//============== REFERENCE COLUMNS ==============

const (
	ColRoom = "Room"
)

var (
	RefCategoriesHeader = []string{ColCategory, ColCodeCategory, ColResidualPercent, ColUsefulLife}
	RefTypesHeader      = []string{ColType, ColCategory, ColCodeType}
	RefCompaniesHeader  = []string{ColCompany, ColCodeCompany}
	RefOwnersHeader     = []string{ColOwner, ColCodeOwner}
	RefLocationHeader   = []string{ColLocation, ColRoom}
)

//============== LOG COLUMNS ==============

var (
	LogStatusHeader = []string{"Timestamp", "Asset ID", "Asset Name", "Old Status", "New Status", "Changed By"}
	LogRelocationHeader = []string{
		"Timestamp", "Asset ID", "Asset Name", "From Location", "From Room",
		"To Location", "To Room", "Moved By",
	}
	LogDisposalHeader = []string{
		"Timestamp", "Asset ID", "Asset Name", "Disposal Method", "Disposal Value",
		"Disposed By", "Notes", "Status",
	}
)

// LogTimestampLayout - формат колонки Timestamp во всех журналах (UTC).
const LogTimestampLayout = "2006-01-02 15:04:05"

// PurchaseDateLayout - формат колонки Purchase Date.
const PurchaseDateLayout = "2006-01-02"

//============== CACHE KEYS ==============

const (
	CacheKeyReferenceLists   = "reference_lists"
	CacheKeySyncReferences   = "sync_references"
	CacheKeyLocationRoomMap  = "location_room_map"
)

// ReferenceCacheKeys сбрасываются целиком при любой записи в справочники.
var ReferenceCacheKeys = []string{CacheKeyReferenceLists, CacheKeySyncReferences, CacheKeyLocationRoomMap}
