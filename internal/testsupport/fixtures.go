package testsupport

import "strings"

// CinemaDocument is a cinema commercial whose description was stored as an
// alternative title.
const CinemaDocument = `<?xml version="1.0" encoding="UTF-8"?>
<PBCoreDescriptionDocument xmlns="http://www.pbcore.org/PBCore/PBCoreNamespace.html">
    <pbcoreIdentifier>
        <identifier>2015-0457</identifier>
        <identifierSource>reklamefilm</identifierSource>
    </pbcoreIdentifier>
    <pbcoreTitle>
        <title>Tivoli sommer</title>
        <titleType>titel</titleType>
    </pbcoreTitle>
    <pbcoreTitle>
        <title>Sommerreklame 2015</title>
        <titleType>alternative</titleType>
    </pbcoreTitle>
    <pbcoreDescription>
        <description></description>
        <descriptionType>kortomtale</descriptionType>
    </pbcoreDescription>
    <pbcoreAssetType>Biografreklamefilm</pbcoreAssetType>
    <pbcoreInstantiation>
        <formatLocation>reklamefilm/2015/0457.mpg</formatLocation>
        <formatMediaType>Moving image</formatMediaType>
    </pbcoreInstantiation>
</PBCoreDescriptionDocument>
`

// UpdatedCinemaDocument is CinemaDocument after the alternative title fix.
const UpdatedCinemaDocument = `<?xml version="1.0" encoding="UTF-8"?>
<PBCoreDescriptionDocument xmlns="http://www.pbcore.org/PBCore/PBCoreNamespace.html">
    <pbcoreIdentifier>
        <identifier>2015-0457</identifier>
        <identifierSource>reklamefilm</identifierSource>
    </pbcoreIdentifier>
    <pbcoreTitle>
        <title>Tivoli sommer</title>
        <titleType>titel</titleType>
    </pbcoreTitle>
    <pbcoreTitle>
        <title/>
        <titleType>alternative</titleType>
    </pbcoreTitle>
    <pbcoreDescription>
        <description>Sommerreklame 2015</description>
        <descriptionType>kortomtale</descriptionType>
    </pbcoreDescription>
    <pbcoreAssetType>Biografreklamefilm</pbcoreAssetType>
    <pbcoreInstantiation>
        <formatLocation>reklamefilm/2015/0457.mpg</formatLocation>
        <formatMediaType>Moving image</formatMediaType>
    </pbcoreInstantiation>
</PBCoreDescriptionDocument>
`

// Tv2Document is a TV 2 commercial without publisher entries.
const Tv2Document = `<?xml version="1.0" encoding="UTF-8"?>
<PBCoreDescriptionDocument xmlns="http://www.pbcore.org/PBCore/PBCoreNamespace.html">
    <pbcoreIdentifier>
        <identifier>tv2-1998-1123</identifier>
        <identifierSource>reklamefilm</identifierSource>
    </pbcoreIdentifier>
    <pbcoreTitle>
        <title>Carlsberg jul</title>
        <titleType>titel</titleType>
    </pbcoreTitle>
    <pbcoreTitle>
        <title></title>
        <titleType>alternative</titleType>
    </pbcoreTitle>
    <pbcoreDescription>
        <description>Julereklame</description>
        <descriptionType>kortomtale</descriptionType>
    </pbcoreDescription>
    <pbcoreAssetType>Tv2reklamefilm</pbcoreAssetType>
    <pbcoreInstantiation>
        <formatLocation>reklamefilm/tv2/1998/1123.mpg</formatLocation>
        <formatMediaType>Moving image</formatMediaType>
    </pbcoreInstantiation>
</PBCoreDescriptionDocument>
`

// UpdatedTv2Document is Tv2Document after the publisher fix.
const UpdatedTv2Document = `<?xml version="1.0" encoding="UTF-8"?>
<PBCoreDescriptionDocument xmlns="http://www.pbcore.org/PBCore/PBCoreNamespace.html">
    <pbcoreIdentifier>
        <identifier>tv2-1998-1123</identifier>
        <identifierSource>reklamefilm</identifierSource>
    </pbcoreIdentifier>
    <pbcoreTitle>
        <title>Carlsberg jul</title>
        <titleType>titel</titleType>
    </pbcoreTitle>
    <pbcoreTitle>
        <title></title>
        <titleType>alternative</titleType>
    </pbcoreTitle>
    <pbcoreDescription>
        <description>Julereklame</description>
        <descriptionType>kortomtale</descriptionType>
    </pbcoreDescription>
    <pbcoreAssetType>Tv2reklamefilm</pbcoreAssetType>
    <pbcorePublisher>
        <publisher>tv2d</publisher>
        <publisherRole>channel_name</publisherRole>
    </pbcorePublisher>
    <pbcorePublisher>
        <publisher>TV 2</publisher>
        <publisherRole>kanalnavn</publisherRole>
    </pbcorePublisher>
    <pbcoreInstantiation>
        <formatLocation>reklamefilm/tv2/1998/1123.mpg</formatLocation>
        <formatMediaType>Moving image</formatMediaType>
    </pbcoreInstantiation>
</PBCoreDescriptionDocument>
`

// PrefixedTv2Document binds the PBCore namespace to a prefix, carries an
// unrelated publisher entry and a misplaced alternative title.
const PrefixedTv2Document = `<?xml version="1.0" encoding="UTF-8"?>
<pb:PBCoreDescriptionDocument xmlns:pb="http://www.pbcore.org/PBCore/PBCoreNamespace.html">
  <pb:pbcoreTitle>
    <pb:title>Lego</pb:title>
    <pb:titleType>titel</pb:titleType>
  </pb:pbcoreTitle>
  <pb:pbcoreTitle>
    <pb:title>Byg videre</pb:title>
    <pb:titleType>alternative</pb:titleType>
  </pb:pbcoreTitle>
  <pb:pbcoreDescription>
    <pb:description/>
  </pb:pbcoreDescription>
  <pb:pbcoreAssetType>Tv2reklamefilm</pb:pbcoreAssetType>
  <pb:pbcorePublisher>
    <pb:publisher>Lego Danmark</pb:publisher>
    <pb:publisherRole>annoncoer</pb:publisherRole>
  </pb:pbcorePublisher>
  <pb:pbcoreInstantiation>
    <pb:formatLocation>reklamefilm/tv2/2001/0042.mpg</pb:formatLocation>
  </pb:pbcoreInstantiation>
  <pb:pbcoreInstantiation>
    <pb:formatLocation>reklamefilm/tv2/2001/0042-proxy.mp4</pb:formatLocation>
  </pb:pbcoreInstantiation>
</pb:PBCoreDescriptionDocument>
`

// WithAssetType returns CinemaDocument relabelled with another asset type.
func WithAssetType(assetType string) string {
	return strings.Replace(CinemaDocument,
		"<pbcoreAssetType>Biografreklamefilm</pbcoreAssetType>",
		"<pbcoreAssetType>"+assetType+"</pbcoreAssetType>", 1)
}
