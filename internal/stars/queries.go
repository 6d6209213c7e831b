package stars

// GraphQL documents for the GitHub Stars API.

const createContributionsMutation = `mutation CreateContributions($data: [ContributionInput!]!) {
    createContributions(data: $data) {
        id
        __typename
    }
}`

const createContributionMutation = `mutation CreateContribution($data: ContributionInput!) {
    createContribution(data: $data) {
        id
        __typename
    }
}`

const updateContributionMutation = `mutation UpdateContribution($id: String!, $data: ContributionInput!) {
    updateContribution(id: $id, data: $data) {
        id
        title
        __typename
    }
}`

const deleteContributionMutation = `mutation DeleteContribution($id: String!) {
    deleteContribution(id: $id) {
        id
        __typename
    }
}`

const createLinkMutation = `mutation CreateLink($link: URL!, $platform: PlatformType!) {
    createLink(data: {link: $link, platform: $platform}) {
        id
        __typename
    }
}`

const updateLinkMutation = `mutation UpdateLink($id: String!, $link: URL!, $platform: PlatformType!) {
    updateLink(id: $id, data: {link: $link, platform: $platform}) {
        id
        link
        __typename
    }
}`

const deleteLinkMutation = `mutation DeleteLink($id: String!) {
    deleteLink(id: $id) {
        id
        __typename
    }
}`

const userDataQuery = `query UserData {
    loggedUser {
        id
        username
        email
        nominee {
            status
            avatar
            name
            bio
            country
            birthdate
            reason
            jobTitle
            company
            phoneNumber
            address
            state
            city
            zipcode
            links {
                id
                link
                platform
                __typename
            }
            contributions {
                id
                type
                date
                title
                url
                description
                __typename
            }
            __typename
        }
        __typename
    }
}`

const getStarsQuery = `query GetStars($username: String!) {
    publicProfile(username: $username) {
        username
        contributions {
            id
            type
            date
            title
            url
            description
            __typename
        }
        __typename
    }
}`

const userQuery = `query User {
    loggedUser {
        id
        username
        email
        nominee {
            status
            avatar
            name
            bio
            country
            birthdate
            reason
            jobTitle
            company
            phoneNumber
            address
            state
            city
            zipcode
            links {
                id
                link
                platform
                __typename
            }
            contributions {
                id
                type
                date
                title
                url
                description
                __typename
            }
            __typename
        }
        __typename
    }
}`

const updateProfileMutation = `mutation UpdateProfile($data: NomineeProfileInput!) {
    updateProfile(data: $data) {
        id
        __typename
    }
}`
